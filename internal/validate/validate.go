// Package validate проверяет свободный текст пользователей на запрещенный
// контент: ссылки, контакты и призывы к общению вне площадки.
package validate

import "regexp"

// Каждый класс запрещенного контента проверяется отдельным выражением.
// Для кириллических слов границы задаются через \p{L}: ASCII-ориентированный
// \b в RE2 не работает с русскими буквами.
var forbiddenPatterns = []*regexp.Regexp{
	// URL
	regexp.MustCompile(`(?i)(?:https?://\S+|www\.\S+)`),
	// Email
	regexp.MustCompile(`(?i)[\w.+\-]+@[\w\-]+\.\w{2,}`),
	// Российские телефонные номера
	regexp.MustCompile(`(?:\+7|8|7)[\s\-()]*\d{3}[\s\-()]*\d{3}[\s\-()]*\d{2}[\s\-()]*\d{2}`),
	// Упоминания соцсетей и хэндлы
	regexp.MustCompile(`(?i)(?:\bt\.me/\S+|\btelegram\b|\bvk\.com\b|@[a-z0-9_]{3,})`),
	regexp.MustCompile(`(?i)(?:^|[^\p{L}])(?:вк|вконтакте|телеграм|телега)(?:[^\p{L}]|$)`),
	// Мессенджеры
	regexp.MustCompile(`(?i)(?:whatsapp|viber|(?:^|[^\p{L}])(?:вацап|вотсап|ватсап|вайбер)(?:[^\p{L}]|$))`),
	// Призывы к контакту вне площадки
	regexp.MustCompile(`(?i)(?:найди|добавь|пиши|напиши)\s+(?:мне|нам)\s+(?:в|на)\s+\p{L}+`),
}

// ContainsForbiddenContent возвращает true, если текст содержит ссылку,
// контактные данные или призыв к общению вне площадки. Функция чистая и
// регистронезависимая; используется как фильтр перед принятием имени,
// описания и образования.
func ContainsForbiddenContent(text string) bool {
	for _, re := range forbiddenPatterns {
		if re.MatchString(text) {
			return true
		}
	}
	return false
}
