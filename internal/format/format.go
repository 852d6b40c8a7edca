// Package format превращает накопленные черновики анкет и задач
// в человекочитаемый текст для отправки пользователю.
package format

import (
	"fmt"
	"strings"

	"tutor_bot/internal/models"
)

// Resolver разрешает идентификаторы справочников в отображаемые имена.
// Для неизвестных идентификаторов реализации возвращают заглушку "ID <n>".
type Resolver interface {
	SubjectName(id int64) string
	SectionName(subjectID, id int64) string
	TaskTypeName(id int64) string
}

// YearsWord возвращает правильную форму слова «год» для числа лет.
func YearsWord(n int) string {
	if r := n % 100; r >= 11 && r <= 14 {
		return "лет"
	}
	switch n % 10 {
	case 1:
		return "год"
	case 2, 3, 4:
		return "года"
	default:
		return "лет"
	}
}

// SolutionFormatTitle возвращает название формата решения.
func SolutionFormatTitle(f models.SolutionFormat) string {
	switch f {
	case models.SolutionAnswerOnly:
		return "Только ответ"
	case models.SolutionFull:
		return "Решение с пояснением"
	case models.SolutionFixMistakes:
		return "Исправить ошибки"
	}
	return "Не указан"
}

// ProfileText форматирует итоговую анкету исполнителя или заказчика.
func ProfileText(d *models.ProfileDraft, names Resolver) string {
	lines := []string{
		"✅ Анкета заполнена!",
		fmt.Sprintf("👤 Имя: %s", orDefault(d.Name, "не указано")),
	}

	if d.Role == models.RoleCustomer {
		lines = append(lines, "🔹 Роль: Заказчик")
		return strings.Join(lines, "\n")
	}

	lines = append(lines,
		fmt.Sprintf("📝 Описание: %s", orDefault(d.Description, "не указано")),
		fmt.Sprintf("⏳ Опыт: %d %s", d.Experience, YearsWord(d.Experience)),
		fmt.Sprintf("🎓 Образование: %s", orDefault(d.Education, "не указано")),
	)

	if len(d.TaskTypes) > 0 {
		typeNames := make([]string, 0, len(d.TaskTypes))
		for _, id := range d.TaskTypes {
			typeNames = append(typeNames, names.TaskTypeName(id))
		}
		lines = append(lines, fmt.Sprintf("🔧 Типы задач: %s", strings.Join(typeNames, ", ")))
	}

	lines = append(lines, "\n📚 Выбранные предметы и разделы:")
	if len(d.Subjects) == 0 {
		lines = append(lines, "  Предметы не выбраны.")
	}
	for _, subjectID := range d.Subjects {
		sectionIDs := d.SubjectSections[subjectID]
		var sectionNames []string
		if len(sectionIDs) == 0 {
			// Пустой выбор означает «все разделы предмета».
			sectionNames = append(sectionNames, "все разделы")
		} else {
			for _, id := range sectionIDs {
				sectionNames = append(sectionNames, names.SectionName(subjectID, id))
			}
		}
		lines = append(lines, fmt.Sprintf("  - %s: %s",
			names.SubjectName(subjectID), strings.Join(sectionNames, ", ")))
	}

	return strings.Join(lines, "\n")
}

// TaskSummary форматирует сводку задачи для шага подтверждения.
// Текст размечен HTML для Telegram.
func TaskSummary(d *models.TaskDraft, names Resolver) string {
	lines := []string{
		"🔍 Пожалуйста, проверьте детали вашей задачи:\n",
		fmt.Sprintf("<b>Предмет:</b> %s", names.SubjectName(d.SubjectID)),
		fmt.Sprintf("<b>Раздел:</b> %s", names.SectionName(d.SubjectID, d.SectionID)),
		fmt.Sprintf("<b>Тип задачи:</b> %s", names.TaskTypeName(d.TaskTypeID)),
		fmt.Sprintf("<b>Формат решения:</b> %s", SolutionFormatTitle(d.Format)),
		fmt.Sprintf("<b>Срок:</b> %s", orDefault(d.Deadline, "не указан")),
		"\n<b>Описание:</b>",
		fmt.Sprintf("<blockquote>%s</blockquote>", orDefault(d.Description, "Нет описания.")),
		fmt.Sprintf("\n<b>Прикреплено файлов:</b> %d", len(d.Files)),
	}
	return strings.Join(lines, "\n")
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
