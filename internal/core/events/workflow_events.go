package events

import (
	"time"

	"github.com/google/uuid"
)

// Workflow event types published by the org and request services. The
// worker command subscribes to these for the audit trail.
const (
	EventEmployeeTransferred = "org.employee_transferred"
	EventDepartmentHeadless  = "org.department_headless"
	EventDeputyPromoted      = "org.deputy_promoted"
	EventRequestSubmitted    = "request.submitted"
	EventRequestDecided      = "request.decided"
)

func newBaseEvent(eventType string, data map[string]interface{}) BaseEvent {
	return BaseEvent{
		ID:        uuid.NewString(),
		Type:      eventType,
		Timestamp: time.Now(),
		Data:      data,
	}
}

func NewEmployeeTransferred(employeeID, fromDepartmentID, toDepartmentID int64) BaseEvent {
	return newBaseEvent(EventEmployeeTransferred, map[string]interface{}{
		"employee_id":        employeeID,
		"from_department_id": fromDepartmentID,
		"to_department_id":   toDepartmentID,
	})
}

func NewDepartmentHeadless(departmentID, departedHeadID int64) BaseEvent {
	return newBaseEvent(EventDepartmentHeadless, map[string]interface{}{
		"department_id":    departmentID,
		"departed_head_id": departedHeadID,
	})
}

func NewDeputyPromoted(departmentID, departedHeadID, promotedDeputyID int64) BaseEvent {
	return newBaseEvent(EventDeputyPromoted, map[string]interface{}{
		"department_id":      departmentID,
		"departed_head_id":   departedHeadID,
		"promoted_deputy_id": promotedDeputyID,
	})
}

func NewRequestSubmitted(kind string, requestID, employeeID, departmentID int64) BaseEvent {
	return newBaseEvent(EventRequestSubmitted, map[string]interface{}{
		"kind":          kind,
		"request_id":    requestID,
		"employee_id":   employeeID,
		"department_id": departmentID,
	})
}

func NewRequestDecided(kind string, requestID int64, decision, approvedBy string) BaseEvent {
	return newBaseEvent(EventRequestDecided, map[string]interface{}{
		"kind":        kind,
		"request_id":  requestID,
		"decision":    decision,
		"approved_by": approvedBy,
	})
}
