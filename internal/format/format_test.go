package format

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"tutor_bot/internal/models"
)

// stubResolver разрешает имена по фиксированным таблицам,
// для неизвестных идентификаторов отвечает заглушкой "ID <n>".
type stubResolver struct {
	subjects  map[int64]string
	sections  map[int64]string
	taskTypes map[int64]string
}

func (r *stubResolver) SubjectName(id int64) string {
	if name, ok := r.subjects[id]; ok {
		return name
	}
	return fmt.Sprintf("ID %d", id)
}

func (r *stubResolver) SectionName(_, id int64) string {
	if name, ok := r.sections[id]; ok {
		return name
	}
	return fmt.Sprintf("ID %d", id)
}

func (r *stubResolver) TaskTypeName(id int64) string {
	if name, ok := r.taskTypes[id]; ok {
		return name
	}
	return fmt.Sprintf("ID %d", id)
}

func newStubResolver() *stubResolver {
	return &stubResolver{
		subjects:  map[int64]string{1: "Математика", 3: "Физика"},
		sections:  map[int64]string{2: "Матанализ", 7: "Механика"},
		taskTypes: map[int64]string{4: "Контрольная", 5: "Домашняя работа"},
	}
}

func TestYearsWord(t *testing.T) {
	cases := map[int]string{
		1:   "год",
		2:   "года",
		3:   "года",
		4:   "года",
		5:   "лет",
		10:  "лет",
		11:  "лет",
		12:  "лет",
		13:  "лет",
		14:  "лет",
		20:  "лет",
		21:  "год",
		22:  "года",
		25:  "лет",
		111: "лет",
		101: "год",
	}
	for n, want := range cases {
		assert.Equal(t, want, YearsWord(n), "n=%d", n)
	}

	// Свойство: остаток от деления на 100 в диапазоне 11–14 всегда дает «лет»,
	// независимо от последней цифры.
	for century := 0; century <= 300; century += 100 {
		for r := 11; r <= 14; r++ {
			assert.Equal(t, "лет", YearsWord(century+r))
		}
	}
}

func TestProfileTextExecutor(t *testing.T) {
	d := models.NewProfileDraft(models.RoleExecutor)
	d.Name = "Иван"
	d.Subjects = []int64{1, 3}
	d.SubjectSections[1] = []int64{2}
	d.TaskTypes = []int64{5}
	d.Description = "ok"
	d.Experience = 3
	d.Education = "МГУ"

	text := ProfileText(d, newStubResolver())
	assert.Contains(t, text, "👤 Имя: Иван")
	assert.Contains(t, text, "⏳ Опыт: 3 года")
	assert.Contains(t, text, "🎓 Образование: МГУ")
	assert.Contains(t, text, "🔧 Типы задач: Домашняя работа")
	assert.Contains(t, text, "- Математика: Матанализ")
	// Пустой набор разделов по предмету 3 означает «все разделы».
	assert.Contains(t, text, "- Физика: все разделы")
}

func TestProfileTextCustomer(t *testing.T) {
	d := models.NewProfileDraft(models.RoleCustomer)
	d.Name = "Анна"

	text := ProfileText(d, newStubResolver())
	assert.Contains(t, text, "👤 Имя: Анна")
	assert.Contains(t, text, "🔹 Роль: Заказчик")
	assert.NotContains(t, text, "Опыт")
}

func TestProfileTextUnknownIDs(t *testing.T) {
	d := models.NewProfileDraft(models.RoleExecutor)
	d.Subjects = []int64{99}
	d.SubjectSections[99] = []int64{42}
	d.TaskTypes = []int64{77}

	text := ProfileText(d, newStubResolver())
	assert.Contains(t, text, "ID 99")
	assert.Contains(t, text, "ID 42")
	assert.Contains(t, text, "ID 77")
}

func TestTaskSummary(t *testing.T) {
	d := &models.TaskDraft{
		SubjectID:   3,
		SectionID:   7,
		TaskTypeID:  4,
		Description: "help",
		Format:      models.SolutionAnswerOnly,
		Deadline:    "завтра",
		Files:       []models.FileRef{{FileID: "a"}, {FileID: "b"}},
	}

	text := TaskSummary(d, newStubResolver())
	assert.Contains(t, text, "<b>Предмет:</b> Физика")
	assert.Contains(t, text, "<b>Раздел:</b> Механика")
	assert.Contains(t, text, "<b>Тип задачи:</b> Контрольная")
	assert.Contains(t, text, "<b>Формат решения:</b> Только ответ")
	assert.Contains(t, text, "<b>Срок:</b> завтра")
	assert.Contains(t, text, "<blockquote>help</blockquote>")
	assert.Contains(t, text, "<b>Прикреплено файлов:</b> 2")
}
