package conflicts

import (
	"sort"
	"time"

	"github.com/m04kA/SMC-ConflictService/internal/domain"
)

// scheduled активное бронирование с вычисленным интервалом [start, end)
type scheduled struct {
	booking *domain.Booking
	start   time.Time
	end     time.Time
}

func (s scheduled) id() int64 {
	return s.booking.ID
}

// Option настройка детектора
type Option func(*Detector)

// WithTravelEstimator подменяет оценку времени в пути (например, на картографический сервис)
func WithTravelEstimator(e TravelEstimator) Option {
	return func(d *Detector) {
		if e != nil {
			d.travel = e
		}
	}
}

// Detector анализирует снимок и находит конфликты расписания
// Детектор не имеет побочных эффектов, повторные вызовы дают одинаковый результат
type Detector struct {
	travel TravelEstimator

	bookings  map[int64]*domain.Booking // все бронирования снимка, включая неактивные
	active    []scheduled               // активные корректные бронирования по (start, id)
	malformed []int64

	crew        map[int64]*domain.CrewMember
	crewIDs     []int64 // отсортированные id сотрудников
	crewByBook  map[int64][]int64
	bookByCrew  map[int64][]scheduled
	openEntries map[int64][]*domain.TimeEntry
}

// NewDetector строит детектор над снимком
func NewDetector(cc ConflictContext, opts ...Option) *Detector {
	d := &Detector{
		travel: &MatrixEstimator{
			Matrix:   cc.TravelTimes,
			Fallback: HeuristicEstimator{},
		},
		bookings:    make(map[int64]*domain.Booking, len(cc.Bookings)),
		crew:        make(map[int64]*domain.CrewMember, len(cc.CrewMembers)),
		crewByBook:  make(map[int64][]int64),
		bookByCrew:  make(map[int64][]scheduled),
		openEntries: make(map[int64][]*domain.TimeEntry),
	}
	for _, opt := range opts {
		opt(d)
	}

	d.indexBookings(cc.Bookings)
	d.indexCrew(cc.CrewMembers, cc.Assignments)
	d.indexTimeEntries(cc.TimeEntries)

	return d
}

func (d *Detector) indexBookings(list []*domain.Booking) {
	for _, b := range list {
		if b == nil {
			continue
		}
		if _, dup := d.bookings[b.ID]; dup {
			continue
		}
		d.bookings[b.ID] = b

		if !b.IsActive() {
			continue
		}
		start, end, err := b.Interval()
		if err != nil {
			d.malformed = append(d.malformed, b.ID)
			continue
		}
		d.active = append(d.active, scheduled{booking: b, start: start, end: end})
	}

	sort.SliceStable(d.active, func(i, j int) bool {
		if !d.active[i].start.Equal(d.active[j].start) {
			return d.active[i].start.Before(d.active[j].start)
		}
		return d.active[i].id() < d.active[j].id()
	})
}

func (d *Detector) indexCrew(members []*domain.CrewMember, assignments []domain.CrewAssignment) {
	for _, m := range members {
		if m == nil {
			continue
		}
		if _, dup := d.crew[m.ID]; dup {
			continue
		}
		d.crew[m.ID] = m
		d.crewIDs = append(d.crewIDs, m.ID)
	}
	sort.Slice(d.crewIDs, func(i, j int) bool { return d.crewIDs[i] < d.crewIDs[j] })

	seen := make(map[domain.CrewAssignment]struct{}, len(assignments))
	for _, a := range assignments {
		// Назначение на неизвестного сотрудника считается отсутствием конфликта
		if _, ok := d.crew[a.CrewMemberID]; !ok {
			continue
		}
		if _, ok := seen[a]; ok {
			continue
		}
		seen[a] = struct{}{}
		d.crewByBook[a.BookingID] = append(d.crewByBook[a.BookingID], a.CrewMemberID)
	}
	for bookingID := range d.crewByBook {
		ids := d.crewByBook[bookingID]
		sort.Slice(ids, func(i, j int) bool { return ids[i] < ids[j] })
	}

	// active уже упорядочен, поэтому списки сотрудников тоже идут по (start, id)
	for _, s := range d.active {
		for _, crewID := range d.crewByBook[s.id()] {
			d.bookByCrew[crewID] = append(d.bookByCrew[crewID], s)
		}
	}
}

func (d *Detector) indexTimeEntries(entries []*domain.TimeEntry) {
	for _, e := range entries {
		if e == nil || !e.IsOpen() {
			continue
		}
		d.openEntries[e.CrewMemberID] = append(d.openEntries[e.CrewMemberID], e)
	}
}

// MalformedBookings id активных бронирований, пропущенных из-за битых данных
func (d *Detector) MalformedBookings() []int64 {
	out := make([]int64, len(d.malformed))
	copy(out, d.malformed)
	return out
}

// DetectAll запускает все правила и сортирует результат по серьезности
func (d *Detector) DetectAll() []ConflictDetails {
	result := make([]ConflictDetails, 0)
	result = append(result, d.detectTimeOverlaps()...)
	result = append(result, d.detectCrewDoubleBookings()...)
	result = append(result, d.detectCrewAvailability()...)
	result = append(result, d.detectTravelTime()...)

	sortBySeverity(result)
	return result
}

// DetectBookingConflicts конфликты пересечения и двойного назначения, затрагивающие бронирование
// Для неизвестного id возвращает пустой список
func (d *Detector) DetectBookingConflicts(bookingID int64) []ConflictDetails {
	result := make([]ConflictDetails, 0)
	if _, ok := d.bookings[bookingID]; !ok {
		return result
	}

	for _, c := range d.DetectAll() {
		if c.Type != TypeTimeOverlap && c.Type != TypeCrewDoubleBooking {
			continue
		}
		if c.References(bookingID) {
			result = append(result, c)
		}
	}
	return result
}

// overlapMinutes длительность пересечения двух интервалов
// Интервалы полуоткрытые, одинаковое начало всегда считается пересечением
func overlapMinutes(a, b scheduled) (int, bool) {
	overlaps := (a.start.Before(b.end) && b.start.Before(a.end)) || a.start.Equal(b.start)
	if !overlaps {
		return 0, false
	}

	from := a.start
	if b.start.After(from) {
		from = b.start
	}
	to := a.end
	if b.end.Before(to) {
		to = b.end
	}

	return int(to.Sub(from) / time.Minute), true
}

// orderedIDs id пары по возрастанию для детерминированных ключей
func orderedIDs(a, b int64) (int64, int64) {
	if a < b {
		return a, b
	}
	return b, a
}
