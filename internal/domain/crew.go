package domain

import "time"

// CrewStatus текущий статус сотрудника бригады
type CrewStatus string

const (
	CrewStatusAvailable   CrewStatus = "available"
	CrewStatusOnJob       CrewStatus = "on_job"
	CrewStatusBreak       CrewStatus = "break"
	CrewStatusOffDuty     CrewStatus = "off_duty"
	CrewStatusUnavailable CrewStatus = "unavailable"
)

// CrewMember сотрудник клининговой бригады
type CrewMember struct {
	ID             int64
	FirstName      string
	LastName       string
	Status         CrewStatus
	Certifications []string
	HireDate       *time.Time
}

// FullName имя для текстов конфликтов
func (c *CrewMember) FullName() string {
	switch {
	case c.FirstName == "" && c.LastName == "":
		return ""
	case c.LastName == "":
		return c.FirstName
	case c.FirstName == "":
		return c.LastName
	default:
		return c.FirstName + " " + c.LastName
	}
}

// IsOffDuty сотрудник в статусе off_duty/unavailable не может выполнить назначение
func (c *CrewMember) IsOffDuty() bool {
	return c.Status == CrewStatusOffDuty || c.Status == CrewStatusUnavailable
}

// IsTentativelyEligible available и break считаются условно доступными
func (c *CrewMember) IsTentativelyEligible() bool {
	return c.Status == CrewStatusAvailable || c.Status == CrewStatusBreak
}

// CrewAssignment назначение сотрудника на бронирование
// Одно бронирование может обслуживать несколько сотрудников
type CrewAssignment struct {
	BookingID    int64
	CrewMemberID int64
}
