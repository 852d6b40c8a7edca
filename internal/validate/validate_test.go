package validate

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestContainsForbiddenContent(t *testing.T) {
	forbidden := []string{
		"test@example.com",
		"пишите на test@example.com срочно",
		"https://example.com",
		"мой сайт www.example.ru",
		"+7 123 456 78 90",
		"8 (912) 345-67-89",
		"найди меня в telegram",
		"мой вк: ivan123",
		"пиши мне в вацап",
		"whatsapp всегда на связи",
		"добавь меня в телеграм",
		"@my_handle",
		"t.me/somebody",
	}
	for _, text := range forbidden {
		assert.True(t, ContainsForbiddenContent(text), "должно быть запрещено: %q", text)
	}

	allowed := []string{
		"Решаю задачи по матанализу",
		"МГУ, факультет математики, бакалавр",
		"Опыт преподавания 5 лет, готовлю к экзаменам",
		"Нужно решить контрольную по физике до пятницы",
		"Иван",
	}
	for _, text := range allowed {
		assert.False(t, ContainsForbiddenContent(text), "не должно быть запрещено: %q", text)
	}
}
