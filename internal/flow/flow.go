// Package flow описывает конечные автоматы диалогов: регистрация
// (заказчик и исполнитель) и создание задачи. Таблицы переходов
// объявлены явно; обработчики транспорта лишь проверяют ввод
// и запускают события.
package flow

import (
	"github.com/looplab/fsm"

	"tutor_bot/internal/models"
)

// Состояния регистрации.
const (
	StateWaitingConsent     = "waiting_consent"
	StateWaitingName        = "waiting_name"
	StateSelectingSubjects  = "selecting_subjects"
	StateSelectingSections  = "selecting_sections"
	StateSelectingTaskType  = "selecting_task_type"
	StateWaitingDescription = "waiting_description"
	StateWaitingExperience  = "waiting_experience"
	StateWaitingEducation   = "waiting_education"
	StateWaitingPhoto       = "waiting_photo"
	StateDone               = "done"
	StateRejected           = "rejected"
)

// Состояния создания задачи.
const (
	StateSelectingSubject        = "selecting_subject"
	StateSelectingSection        = "selecting_section"
	StateEnteringDescription     = "entering_description"
	StateSelectingSolutionFormat = "selecting_solution_format"
	StateEnteringDeadline        = "entering_deadline"
	StateUploadingFiles          = "uploading_files"
	StateConfirmingCreation      = "confirming_creation"
	StateCancelled               = "cancelled"
)

// События регистрации.
const (
	EventAccept           = "accept"
	EventReject           = "reject"
	EventNameSaved        = "name_saved"
	EventSubjectsDone     = "subjects_done"
	EventNextSubject      = "next_subject"
	EventSectionsComplete = "sections_complete"
	EventTaskTypesDone    = "task_types_done"
	EventDescriptionSaved = "description_saved"
	EventExperienceSaved  = "experience_saved"
	EventEducationSaved   = "education_saved"
	EventPhotoReceived    = "photo_received"
)

// События создания задачи.
const (
	EventSubjectChosen = "subject_chosen"
	EventSectionChosen = "section_chosen"
	EventTypeChosen    = "type_chosen"
	EventFormatChosen  = "format_chosen"
	EventDeadlineSaved = "deadline_saved"
	EventFilesDone     = "files_done"
	EventConfirm       = "confirm"
	EventCancel        = "cancel"
)

// NewRegistration создает автомат регистрации для указанной роли.
// У заказчика диалог заканчивается после имени; исполнитель проходит
// полную анкету: предметы, разделы, типы задач, описание, опыт,
// образование и фото.
func NewRegistration(role models.Role) *fsm.FSM {
	events := fsm.Events{
		{Name: EventAccept, Src: []string{StateWaitingConsent}, Dst: StateWaitingName},
		{Name: EventReject, Src: []string{StateWaitingConsent}, Dst: StateRejected},
	}

	if role == models.RoleCustomer {
		events = append(events,
			fsm.EventDesc{Name: EventNameSaved, Src: []string{StateWaitingName}, Dst: StateDone},
		)
		return fsm.NewFSM(StateWaitingConsent, events, fsm.Callbacks{})
	}

	events = append(events,
		fsm.EventDesc{Name: EventNameSaved, Src: []string{StateWaitingName}, Dst: StateSelectingSubjects},
		fsm.EventDesc{Name: EventSubjectsDone, Src: []string{StateSelectingSubjects}, Dst: StateSelectingSections},
		// Выбор разделов повторяется для каждого предмета по порядку;
		// курсор по предметам хранится в черновике.
		fsm.EventDesc{Name: EventNextSubject, Src: []string{StateSelectingSections}, Dst: StateSelectingSections},
		fsm.EventDesc{Name: EventSectionsComplete, Src: []string{StateSelectingSections}, Dst: StateSelectingTaskType},
		fsm.EventDesc{Name: EventTaskTypesDone, Src: []string{StateSelectingTaskType}, Dst: StateWaitingDescription},
		fsm.EventDesc{Name: EventDescriptionSaved, Src: []string{StateWaitingDescription}, Dst: StateWaitingExperience},
		fsm.EventDesc{Name: EventExperienceSaved, Src: []string{StateWaitingExperience}, Dst: StateWaitingEducation},
		fsm.EventDesc{Name: EventEducationSaved, Src: []string{StateWaitingEducation}, Dst: StateWaitingPhoto},
		fsm.EventDesc{Name: EventPhotoReceived, Src: []string{StateWaitingPhoto}, Dst: StateDone},
	)
	return fsm.NewFSM(StateWaitingConsent, events, fsm.Callbacks{})
}

// NewTaskCreation создает автомат мастера создания задачи.
// Все шаги выбора здесь одиночные: выбор сразу продвигает диалог.
func NewTaskCreation() *fsm.FSM {
	return fsm.NewFSM(StateSelectingSubject, fsm.Events{
		{Name: EventSubjectChosen, Src: []string{StateSelectingSubject}, Dst: StateSelectingSection},
		{Name: EventSectionChosen, Src: []string{StateSelectingSection}, Dst: StateEnteringDescription},
		{Name: EventDescriptionSaved, Src: []string{StateEnteringDescription}, Dst: StateSelectingTaskType},
		{Name: EventTypeChosen, Src: []string{StateSelectingTaskType}, Dst: StateSelectingSolutionFormat},
		{Name: EventFormatChosen, Src: []string{StateSelectingSolutionFormat}, Dst: StateEnteringDeadline},
		{Name: EventDeadlineSaved, Src: []string{StateEnteringDeadline}, Dst: StateUploadingFiles},
		{Name: EventFilesDone, Src: []string{StateUploadingFiles}, Dst: StateConfirmingCreation},
		{Name: EventConfirm, Src: []string{StateConfirmingCreation}, Dst: StateDone},
		{Name: EventCancel, Src: []string{StateConfirmingCreation}, Dst: StateCancelled},
	}, fsm.Callbacks{})
}
