package bot

import (
	"strconv"

	"tutor_bot/internal/flow"
	"tutor_bot/internal/models"

	"gopkg.in/telebot.v3"
)

// roleKeyboard предлагает выбрать роль на площадке.
func roleKeyboard() *telebot.ReplyMarkup {
	menu := &telebot.ReplyMarkup{}
	menu.Inline(
		menu.Row(menu.Data("🙋 Я заказчик", "role", string(models.RoleCustomer))),
		menu.Row(menu.Data("🎓 Я исполнитель", "role", string(models.RoleExecutor))),
	)
	return menu
}

// consentKeyboard — согласие на обработку персональных данных.
func consentKeyboard() *telebot.ReplyMarkup {
	menu := &telebot.ReplyMarkup{}
	menu.Inline(
		menu.Row(menu.Data("✅ Принимаю", "consent", "accept")),
		menu.Row(menu.Data("❌ Отказываюсь", "consent", "reject")),
	)
	return menu
}

// multiselectKeyboard строит клавиатуру с чекбоксами: выбранные
// варианты помечаются галочкой, последняя строка завершает шаг.
func multiselectKeyboard(options []models.Option, selected []int64, toggleUnique, doneUnique string) *telebot.ReplyMarkup {
	menu := &telebot.ReplyMarkup{}
	var rows []telebot.Row
	for _, option := range options {
		text := option.Name
		if flow.Contains(selected, option.ID) {
			text = "✅ " + text
		}
		btn := menu.Data(text, toggleUnique, strconv.FormatInt(option.ID, 10))
		rows = append(rows, menu.Row(btn))
	}
	rows = append(rows, menu.Row(menu.Data("Готово ➡️", doneUnique)))
	menu.Inline(rows...)
	return menu
}

// selectKeyboard строит клавиатуру одиночного выбора.
func selectKeyboard(options []models.Option, unique string) *telebot.ReplyMarkup {
	menu := &telebot.ReplyMarkup{}
	var rows []telebot.Row
	for _, option := range options {
		btn := menu.Data(option.Name, unique, strconv.FormatInt(option.ID, 10))
		rows = append(rows, menu.Row(btn))
	}
	menu.Inline(rows...)
	return menu
}

func (b *Bot) subjectsKeyboard(selected []int64) *telebot.ReplyMarkup {
	return multiselectKeyboard(b.refdata.Subjects(), selected, "reg_subj", "reg_subj_done")
}

func (b *Bot) sectionsKeyboard(subjectID int64, selected []int64) *telebot.ReplyMarkup {
	return multiselectKeyboard(b.refdata.Sections(subjectID), selected, "reg_sect", "reg_sect_done")
}

func (b *Bot) taskTypesKeyboard(selected []int64) *telebot.ReplyMarkup {
	return multiselectKeyboard(b.refdata.TaskTypes(), selected, "reg_tt", "reg_tt_done")
}

// formatKeyboard — выбор формата решения задачи.
func formatKeyboard() *telebot.ReplyMarkup {
	menu := &telebot.ReplyMarkup{}
	menu.Inline(
		menu.Row(menu.Data("Только ответ", "task_fmt", string(models.SolutionAnswerOnly))),
		menu.Row(menu.Data("Полное решение", "task_fmt", string(models.SolutionFull))),
		menu.Row(menu.Data("Исправить ошибки", "task_fmt", string(models.SolutionFixMistakes))),
	)
	return menu
}

// filesKeyboard — завершение загрузки вложений.
func filesKeyboard() *telebot.ReplyMarkup {
	menu := &telebot.ReplyMarkup{}
	menu.Inline(menu.Row(menu.Data("Готово ✅", "task_files_done")))
	return menu
}

// confirmKeyboard — подтверждение создания задачи.
func confirmKeyboard() *telebot.ReplyMarkup {
	menu := &telebot.ReplyMarkup{}
	menu.Inline(
		menu.Row(menu.Data("✅ Создать задачу", "task_confirm")),
		menu.Row(menu.Data("❌ Отменить", "task_cancel")),
	)
	return menu
}
