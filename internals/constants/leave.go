package constants

const (
	LeavePaidTimeOff = "Paid Time Off"
	LeaveSickTimeOff = "Sick Time Off"
	LeaveUnpaid      = "Unpaid Leave"
	LeaveOther       = "Other"

	LeaveStatusPending  = "pending"
	LeaveStatusApproved = "approved"
	LeaveStatusRejected = "rejected"

	// Fixed annual allotments in days.
	PaidTimeOffAllotment = 24
	SickTimeOffAllotment = 7

	DefaultLeaveReason = "No reason provided"
)

var LeaveTypes = []string{LeavePaidTimeOff, LeaveSickTimeOff, LeaveUnpaid, LeaveOther}

func IsValidLeaveType(t string) bool {
	for _, lt := range LeaveTypes {
		if lt == t {
			return true
		}
	}
	return false
}

const (
	AttendancePresent = "present"
	AttendanceAbsent  = "absent"
	AttendanceLeave   = "leave"
	AttendanceHalfDay = "half-day"

	TodayCheckedIn  = "checked-in"
	TodayCheckedOut = "checked-out"

	// Standard workday used for the extra-hours display value.
	StandardWorkHours = 9.0
)
