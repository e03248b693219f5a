package conflicts

import (
	"math"
	"strconv"
	"strings"
	"unicode"

	"github.com/m04kA/SMC-ConflictService/internal/domain"
)

// Параметры грубой оценки времени в пути
const (
	DifferentCityTravelMinutes = 45.0
	MaxSameCityTravelMinutes   = 30.0
	MinutesPerZipStep          = 3.0
)

// TravelEstimator оценка времени в пути между двумя адресами, в минутах
// Реализация с картографическим API подключается через WithTravelEstimator
type TravelEstimator interface {
	EstimateMinutes(from, to domain.Location) float64
}

// MatrixEstimator берет время из предрассчитанной матрицы, иначе спрашивает Fallback
type MatrixEstimator struct {
	Matrix   map[string]float64
	Fallback TravelEstimator
}

// EstimateMinutes ищет "{from}_{to}", затем обратное направление
func (e *MatrixEstimator) EstimateMinutes(from, to domain.Location) float64 {
	if minutes, ok := e.Matrix[domain.TravelKey(from.Address, to.Address)]; ok {
		return minutes
	}
	if minutes, ok := e.Matrix[domain.TravelKey(to.Address, from.Address)]; ok {
		return minutes
	}
	if e.Fallback == nil {
		return HeuristicEstimator{}.EstimateMinutes(from, to)
	}
	return e.Fallback.EstimateMinutes(from, to)
}

// HeuristicEstimator оценка по городу и разнице почтовых индексов
//   - тот же адрес: 0
//   - другой город: 45 минут
//   - тот же город: min(30, |zip1 - zip2| * 3)
type HeuristicEstimator struct{}

// EstimateMinutes реализует TravelEstimator
func (HeuristicEstimator) EstimateMinutes(from, to domain.Location) float64 {
	if from.SameAddress(to) {
		return 0
	}
	if !from.SameCity(to) {
		return DifferentCityTravelMinutes
	}

	zip1, ok1 := parseZip(from.ZipCode)
	zip2, ok2 := parseZip(to.ZipCode)
	if !ok1 || !ok2 {
		return MaxSameCityTravelMinutes
	}

	return math.Min(MaxSameCityTravelMinutes, math.Abs(float64(zip1-zip2))*MinutesPerZipStep)
}

// parseZip берет ведущие цифры индекса ("12345-6789" -> 12345)
func parseZip(zip string) (int, bool) {
	zip = strings.TrimSpace(zip)
	end := strings.IndexFunc(zip, func(r rune) bool { return !unicode.IsDigit(r) })
	if end == -1 {
		end = len(zip)
	}
	if end == 0 {
		return 0, false
	}
	n, err := strconv.Atoi(zip[:end])
	if err != nil {
		return 0, false
	}
	return n, true
}

// detectTravelTime проверяет, успевает ли сотрудник доехать между соседними бронированиями
// Пересекающиеся пары пропускаются, их покрывает правило двойного назначения
func (d *Detector) detectTravelTime() []ConflictDetails {
	result := make([]ConflictDetails, 0)

	for _, crewID := range d.crewIDs {
		list := d.bookByCrew[crewID]
		for i := 0; i+1 < len(list); i++ {
			prev, next := list[i], list[i+1]
			if next.start.Before(prev.end) {
				continue
			}

			available := next.start.Sub(prev.end).Minutes()
			required := d.travel.EstimateMinutes(prev.booking.Location(), next.booking.Location())
			if required <= available {
				continue
			}

			result = append(result, d.travelConflict(crewID, prev, next, required, available))
		}
	}

	return result
}
