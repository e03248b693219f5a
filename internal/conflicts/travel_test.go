package conflicts

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-ConflictService/internal/domain"
)

type fixedEstimator float64

func (f fixedEstimator) EstimateMinutes(_, _ domain.Location) float64 {
	return float64(f)
}

func TestHeuristicEstimator(t *testing.T) {
	home := domain.Location{Address: "1 Main St", City: "Springfield", ZipCode: "10000"}

	tests := []struct {
		name     string
		to       domain.Location
		expected float64
	}{
		{
			name:     "same address",
			to:       domain.Location{Address: " 1 main st ", City: "SPRINGFIELD", ZipCode: "10000"},
			expected: 0,
		},
		{
			name:     "different city",
			to:       domain.Location{Address: "2 Elm St", City: "Shelbyville", ZipCode: "10001"},
			expected: DifferentCityTravelMinutes,
		},
		{
			name:     "nearby zip",
			to:       domain.Location{Address: "9 Oak Ave", City: "Springfield", ZipCode: "10004"},
			expected: 12,
		},
		{
			name:     "far zip is capped",
			to:       domain.Location{Address: "9 Oak Ave", City: "Springfield", ZipCode: "10500"},
			expected: MaxSameCityTravelMinutes,
		},
		{
			name:     "zip with extension",
			to:       domain.Location{Address: "9 Oak Ave", City: "Springfield", ZipCode: "10002-1234"},
			expected: 6,
		},
		{
			name:     "unparsable zip",
			to:       domain.Location{Address: "9 Oak Ave", City: "Springfield", ZipCode: "N/A"},
			expected: MaxSameCityTravelMinutes,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.expected, HeuristicEstimator{}.EstimateMinutes(home, tt.to))
		})
	}
}

func TestMatrixEstimator(t *testing.T) {
	from := domain.Location{Address: "1 Main St", City: "Springfield", ZipCode: "10000"}
	to := domain.Location{Address: "2 Elm St", City: "Shelbyville", ZipCode: "20000"}

	t.Run("forward key", func(t *testing.T) {
		e := &MatrixEstimator{Matrix: map[string]float64{"1 Main St_2 Elm St": 12}}
		assert.Equal(t, 12.0, e.EstimateMinutes(from, to))
	})

	t.Run("reverse key", func(t *testing.T) {
		e := &MatrixEstimator{Matrix: map[string]float64{"2 Elm St_1 Main St": 17}}
		assert.Equal(t, 17.0, e.EstimateMinutes(from, to))
	})

	t.Run("forward wins over reverse", func(t *testing.T) {
		e := &MatrixEstimator{Matrix: map[string]float64{
			"1 Main St_2 Elm St": 12,
			"2 Elm St_1 Main St": 17,
		}}
		assert.Equal(t, 12.0, e.EstimateMinutes(from, to))
	})

	t.Run("missing pair falls back", func(t *testing.T) {
		e := &MatrixEstimator{Matrix: map[string]float64{}, Fallback: fixedEstimator(7)}
		assert.Equal(t, 7.0, e.EstimateMinutes(from, to))
	})

	t.Run("nil fallback uses heuristic", func(t *testing.T) {
		e := &MatrixEstimator{}
		assert.Equal(t, DifferentCityTravelMinutes, e.EstimateMinutes(from, to))
	})
}

func TestParseZip(t *testing.T) {
	tests := []struct {
		in       string
		expected int
		ok       bool
	}{
		{in: "12345", expected: 12345, ok: true},
		{in: " 02134 ", expected: 2134, ok: true},
		{in: "12345-6789", expected: 12345, ok: true},
		{in: "", ok: false},
		{in: "abc", ok: false},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			n, ok := parseZip(tt.in)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.expected, n)
		})
	}
}

func TestTravelTime_ShortGapBetweenBookings(t *testing.T) {
	cc := ConflictContext{
		Bookings: []*domain.Booking{
			newBooking(1, "12:00", 120),
			newBooking(2, "14:10", 60, withAddress("9 Oak Ave", "Springfield", "10010")),
		},
		CrewMembers: []*domain.CrewMember{newCrew(10, domain.CrewStatusAvailable)},
		Assignments: []domain.CrewAssignment{assign(1, 10), assign(2, 10)},
	}

	result := NewDetector(cc).DetectAll()

	require.Len(t, result, 1)
	c := result[0]
	assert.Equal(t, TypeTravelTime, c.Type)
	assert.Equal(t, SeverityMedium, c.Severity)
	assert.Equal(t, "travel_time_10_1_2", c.ID)
	assert.Equal(t, []int64{1, 2}, c.AffectedBookings)
	assert.Equal(t, 30.0, c.Metadata["requiredMinutes"])
	assert.Equal(t, 10.0, c.Metadata["availableMinutes"])
	assert.Equal(t, 20.0, c.Metadata["shortfall"])
	assert.Equal(t, "1 Main St", c.Metadata["fromAddress"])
	assert.Equal(t, "9 Oak Ave", c.Metadata["toAddress"])

	delay := resolutionByID(c, "_delay")
	require.NotNil(t, delay)
	assert.Equal(t, ResolutionReschedule, delay.Type)
	assert.True(t, delay.AutoApplicable)
	assert.Equal(t, int64(2), delay.Parameters["bookingId"])
	assert.Equal(t, 35, delay.Parameters["delayMinutes"])

	reassign := resolutionByID(c, "_reassign")
	require.NotNil(t, reassign)
	assert.False(t, reassign.AutoApplicable)
}

func TestTravelTime_DifferentCityUsesFallback(t *testing.T) {
	cc := ConflictContext{
		Bookings: []*domain.Booking{
			newBooking(1, "09:00", 60),
			newBooking(2, "10:30", 60, withAddress("2 Elm St", "Shelbyville", "10000")),
			newBooking(3, "12:00", 60, withAddress("3 Elm St", "Shelbyville", "10000")),
		},
		CrewMembers: []*domain.CrewMember{newCrew(10, domain.CrewStatusAvailable)},
		Assignments: []domain.CrewAssignment{assign(1, 10), assign(2, 10), assign(3, 10)},
	}

	result := NewDetector(cc).DetectAll()

	require.Len(t, result, 1)
	assert.Equal(t, "travel_time_10_1_2", result[0].ID)
	assert.Equal(t, 45.0, result[0].Metadata["requiredMinutes"])
	assert.Equal(t, 15.0, result[0].Metadata["shortfall"])
}

func TestTravelTime_NoConflict(t *testing.T) {
	tests := []struct {
		name        string
		second      *domain.Booking
		travelTimes map[string]float64
	}{
		{
			name:   "same address back to back",
			second: newBooking(2, "11:00", 60),
		},
		{
			name:   "enough gap",
			second: newBooking(2, "11:45", 60, withAddress("2 Elm St", "Shelbyville", "20000")),
		},
		{
			name:   "gap equals required time",
			second: newBooking(2, "11:30", 60, withAddress("9 Oak Ave", "Springfield", "10010")),
		},
		{
			name:        "matrix overrides heuristic",
			second:      newBooking(2, "11:05", 60, withAddress("2 Elm St", "Shelbyville", "20000")),
			travelTimes: map[string]float64{"2 Elm St_1 Main St": 5},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cc := ConflictContext{
				Bookings:    []*domain.Booking{newBooking(1, "09:00", 120), tt.second},
				CrewMembers: []*domain.CrewMember{newCrew(10, domain.CrewStatusAvailable)},
				Assignments: []domain.CrewAssignment{assign(1, 10), assign(2, 10)},
				TravelTimes: tt.travelTimes,
			}

			assert.Empty(t, NewDetector(cc).DetectAll())
		})
	}
}

func TestTravelTime_WithTravelEstimator(t *testing.T) {
	cc := ConflictContext{
		Bookings: []*domain.Booking{
			newBooking(1, "09:00", 60),
			newBooking(2, "11:00", 60),
		},
		CrewMembers: []*domain.CrewMember{newCrew(10, domain.CrewStatusAvailable)},
		Assignments: []domain.CrewAssignment{assign(1, 10), assign(2, 10)},
	}

	assert.Empty(t, NewDetector(cc, WithTravelEstimator(nil)).DetectAll())

	result := NewDetector(cc, WithTravelEstimator(fixedEstimator(90.5))).DetectAll()
	require.Len(t, result, 1)
	assert.Equal(t, 30.5, result[0].Metadata["shortfall"])

	delay := resolutionByID(result[0], "_delay")
	require.NotNil(t, delay)
	assert.Equal(t, 46, delay.Parameters["delayMinutes"])
}
