// Package models содержит структуры данных, используемые в проекте:
// роли, черновики анкет и задач, справочные данные.
package models

// Role определяет роль пользователя на площадке (заказчик или исполнитель).
type Role string

const (
	// RoleCustomer — заказчик: создает задачи.
	RoleCustomer Role = "customer"
	// RoleExecutor — исполнитель: решает задачи заказчиков.
	RoleExecutor Role = "executor"
)

// SolutionFormat представляет желаемый формат решения задачи.
type SolutionFormat string

const (
	// SolutionAnswerOnly — только итоговый ответ.
	SolutionAnswerOnly SolutionFormat = "answer_only"
	// SolutionFull — решение с пояснением.
	SolutionFull SolutionFormat = "full_solution"
	// SolutionFixMistakes — проверка и исправление ошибок.
	SolutionFixMistakes SolutionFormat = "fix_mistakes"
)

// Option представляет элемент справочника: идентификатор и отображаемое имя.
type Option struct {
	ID   int64  `json:"id"`
	Name string `json:"name"`
}

// FileKind — тип прикрепленного файла (фото или документ).
type FileKind string

const (
	// FilePhoto — вложение является фотографией.
	FilePhoto FileKind = "photo"
	// FileDocument — вложение является файлом произвольного типа.
	FileDocument FileKind = "document"
)

// FileRef хранит ссылку на файл в Telegram до его выгрузки в хранилище.
type FileRef struct {
	FileID string
	Kind   FileKind
	Ext    string // расширение без точки, например "jpg"
}

// ProfileDraft — накопитель данных регистрации одного пользователя.
// Живет только внутри активного диалога: очищается при завершении,
// отмене или отказе от соглашения и никогда не сохраняется частично.
type ProfileDraft struct {
	Role            Role
	Name            string
	Subjects        []int64
	SubjectSections map[int64][]int64 // пустой срез или отсутствие ключа = "все разделы"
	TaskTypes       []int64
	Description     string
	Experience      int
	Education       string
	PhotoFileID     string
	CurrentSubject  int // индекс предмета, для которого выбираются разделы
}

// NewProfileDraft создает черновик регистрации для указанной роли.
func NewProfileDraft(role Role) *ProfileDraft {
	return &ProfileDraft{
		Role:            role,
		SubjectSections: make(map[int64][]int64),
	}
}

// TaskDraft — накопитель данных создаваемой задачи.
type TaskDraft struct {
	SubjectID   int64
	SectionID   int64
	TaskTypeID  int64
	Description string
	Format      SolutionFormat
	Deadline    string
	Files       []FileRef
}

// User представляет строку таблицы users во внешнем хранилище.
type User struct {
	UserID   int64  `json:"user_id"`
	Username string `json:"username"`
	Role     Role   `json:"role"`
}

// ExecutorProfile представляет строку таблицы executor.
// ExecutorID присваивается хранилищем при первом сохранении.
type ExecutorProfile struct {
	ExecutorID         int64  `json:"executor_id,omitempty"`
	UserID             int64  `json:"user_id"`
	Name               string `json:"executor_name"`
	Description        string `json:"description"`
	Experience         int    `json:"experience"`
	Education          string `json:"education"`
	PhotoURL           string `json:"photo_url"`
	PersonalDataAccess bool   `json:"personal_data_access"`
}

// CustomerProfile представляет строку таблицы customer.
type CustomerProfile struct {
	CustomerID         int64  `json:"customer_id,omitempty"`
	UserID             int64  `json:"user_id"`
	Name               string `json:"customer_name"`
	PersonalDataAccess bool   `json:"personal_data_access"`
}

// Task представляет задачу во внешнем хранилище.
// Создается в два шага: вставка без вложений (хранилище присваивает ID),
// затем обновление со списком ссылок на выгруженные файлы.
type Task struct {
	ID             int64          `json:"task_id,omitempty"`
	CustomerID     int64          `json:"customer_id"`
	SubjectID      int64          `json:"subject_id"`
	SectionID      int64          `json:"section_id"`
	TaskTypeID     int64          `json:"task_type_id"`
	Description    string         `json:"description"`
	SolutionFormat SolutionFormat `json:"solution_format"`
	Deadline       string         `json:"deadline"`
	AttachmentURLs []string       `json:"attachments_urls,omitempty"`
}
