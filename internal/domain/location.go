package domain

import "strings"

// Location адрес для грубой оценки времени в пути
type Location struct {
	Address string
	City    string
	ZipCode string
}

// SameAddress сравнивает адреса без учета регистра и пробелов по краям
func (l Location) SameAddress(other Location) bool {
	return normalize(l.Address) != "" &&
		normalize(l.Address) == normalize(other.Address) &&
		normalize(l.City) == normalize(other.City)
}

// SameCity сравнивает города без учета регистра
func (l Location) SameCity(other Location) bool {
	return normalize(l.City) == normalize(other.City)
}

// TravelTime запись предрассчитанной матрицы времени в пути
type TravelTime struct {
	FromAddress string
	ToAddress   string
	Minutes     float64
}

// TravelKey ключ матрицы времени в пути: "{address1}_{address2}"
func TravelKey(from, to string) string {
	return from + "_" + to
}

func normalize(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
