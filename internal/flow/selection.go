package flow

// Toggle переключает членство идентификатора в выборке: удаляет, если
// идентификатор уже выбран, иначе добавляет в конец. Порядок добавления
// сохраняется, каждый идентификатор встречается не более одного раза.
func Toggle(set []int64, id int64) []int64 {
	if !Contains(set, id) {
		return append(set, id)
	}
	result := make([]int64, 0, len(set))
	for _, v := range set {
		if v != id {
			result = append(result, v)
		}
	}
	return result
}

// Contains сообщает, выбран ли идентификатор.
func Contains(set []int64, id int64) bool {
	for _, v := range set {
		if v == id {
			return true
		}
	}
	return false
}
