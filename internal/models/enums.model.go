package models

import "slices"

type UserRole string

const (
	RoleCleaner         UserRole = "Cleaner"
	RoleHomeOwner       UserRole = "HomeOwner"
	RolePropertyManager UserRole = "PropertyManager"
	RoleAdmin           UserRole = "Admin"
)

var UserRoles = []UserRole{RoleCleaner, RoleHomeOwner, RolePropertyManager, RoleAdmin}

func (r UserRole) IsValid() bool {
	return slices.Contains(UserRoles, r)
}

// OwnsProperties reports whether the role can own properties and request bookings.
func (r UserRole) OwnsProperties() bool {
	return r == RoleHomeOwner || r == RolePropertyManager
}

type GenericStatus string

const (
	StatusActive   GenericStatus = "Active"
	StatusInactive GenericStatus = "Inactive"
	StatusDeleted  GenericStatus = "Deleted"
)

type BookingStatus string

const (
	BookingPending     BookingStatus = "PENDING"
	BookingInProgress  BookingStatus = "IN_PROGRESS"
	BookingCompleted   BookingStatus = "COMPLETED"
	BookingRescheduled BookingStatus = "RESCHEDULED"
	BookingCancelled   BookingStatus = "CANCELLED"
	BookingFailed      BookingStatus = "FAILED"
)

var BookingStatuses = []BookingStatus{
	BookingPending,
	BookingInProgress,
	BookingCompleted,
	BookingRescheduled,
	BookingCancelled,
	BookingFailed,
}

func (s BookingStatus) IsTerminal() bool {
	return s == BookingCompleted || s == BookingCancelled || s == BookingFailed
}

// IsAssigned is true for the states in which a cleaner owns the booking.
func (s BookingStatus) IsAssigned() bool {
	return s == BookingInProgress || s == BookingRescheduled
}

type BookingAction string

const (
	ActionAccept     BookingAction = "ACCEPT"
	ActionIgnore     BookingAction = "IGNORE"
	ActionReschedule BookingAction = "RESCHEDULE"
	ActionCancel     BookingAction = "CANCEL"
	ActionComplete   BookingAction = "COMPLETE"
	ActionRenotify   BookingAction = "RENOTIFY"
)

var BookingActions = []BookingAction{
	ActionAccept,
	ActionIgnore,
	ActionReschedule,
	ActionCancel,
	ActionComplete,
	ActionRenotify,
}

func (a BookingAction) PastTense() string {
	switch a {
	case ActionAccept:
		return "accepted"
	case ActionIgnore:
		return "ignored"
	case ActionReschedule:
		return "rescheduled"
	case ActionCancel:
		return "cancelled"
	case ActionComplete:
		return "completed"
	case ActionRenotify:
		return "renotified"
	}
	return string(a)
}

type DayType string

const (
	Weekdays DayType = "Weekdays"
	Weekends DayType = "Weekends"
)

var DayTypes = []DayType{Weekdays, Weekends}

type Period string

const (
	Morning   Period = "Morning"
	Afternoon Period = "Afternoon"
	Evening   Period = "Evening"
)

var Periods = []Period{Morning, Afternoon, Evening}

type ServiceType string

const (
	StandardCleaning         ServiceType = "STANDARD_CLEANING"
	DeepCleaning             ServiceType = "DEEP_CLEANING"
	MoveInOutCleaning        ServiceType = "MOVE_IN_OUT_CLEANING"
	PostConstructionCleaning ServiceType = "POST_CONSTRUCTION_CLEANING"
	OfficeCleaning           ServiceType = "OFFICE_CLEANING"
	LaundryService           ServiceType = "LAUNDRY"
)

var ServiceTypes = []ServiceType{
	StandardCleaning,
	DeepCleaning,
	MoveInOutCleaning,
	PostConstructionCleaning,
	OfficeCleaning,
	LaundryService,
}

type StaffingType string

const (
	SingleCleaner StaffingType = "SINGLE_CLEANER"
	TwoCleaners   StaffingType = "TWO_CLEANERS"
	CleaningTeam  StaffingType = "TEAM"
)

var StaffingTypes = []StaffingType{SingleCleaner, TwoCleaners, CleaningTeam}

type JobType string

const (
	OneOffJob    JobType = "ONE_OFF"
	RecurringJob JobType = "RECURRING"
	AnyJob       JobType = "ANY"
)

var JobTypes = []JobType{OneOffJob, RecurringJob, AnyJob}

type PaymentStatus string

const (
	PaymentPending  PaymentStatus = "Pending"
	PaymentPaid     PaymentStatus = "Paid"
	PaymentRefunded PaymentStatus = "Refunded"
)

var PaymentStatuses = []PaymentStatus{PaymentPending, PaymentPaid, PaymentRefunded}

type PropertyType string

const (
	Apartment PropertyType = "APARTMENT"
	House     PropertyType = "HOUSE"
	Duplex    PropertyType = "DUPLEX"
	Office    PropertyType = "OFFICE"
)

var PropertyTypes = []PropertyType{Apartment, House, Duplex, Office}

type NotificationType string

const (
	NotificationNewBooking         NotificationType = "NewBooking"
	NotificationJobReminder        NotificationType = "JobReminder"
	NotificationBookingAccepted    NotificationType = "BookingAccepted"
	NotificationBookingRejected    NotificationType = "BookingRejected"
	NotificationBookingRescheduled NotificationType = "BookingRescheduled"
	NotificationBookingCancelled   NotificationType = "BookingCancelled"
	NotificationBookingCompleted   NotificationType = "BookingCompleted"
	NotificationBookingIgnored     NotificationType = "BookingIgnored"
)

var NotificationTypes = []NotificationType{
	NotificationNewBooking,
	NotificationJobReminder,
	NotificationBookingAccepted,
	NotificationBookingRejected,
	NotificationBookingRescheduled,
	NotificationBookingCancelled,
	NotificationBookingCompleted,
	NotificationBookingIgnored,
}

type MessageStatus string

const (
	MessageSent      MessageStatus = "sent"
	MessageDelivered MessageStatus = "delivered"
	MessageRead      MessageStatus = "read"
)

var MessageStatuses = []MessageStatus{MessageSent, MessageDelivered, MessageRead}

// Rank orders message statuses; a transition is valid only when the rank grows.
func (s MessageStatus) Rank() int {
	return slices.Index(MessageStatuses, s)
}

func (s MessageStatus) CanAdvanceTo(next MessageStatus) bool {
	return s.Rank() >= 0 && next.Rank() > s.Rank()
}

func toStrings[T ~string](values []T) []string {
	out := make([]string, len(values))
	for i, v := range values {
		out[i] = string(v)
	}
	return out
}

// AllEnums is the catalogue served by the enums endpoint.
func AllEnums() map[string][]string {
	return map[string][]string{
		"UserRole":         toStrings(UserRoles),
		"GenericStatus":    toStrings([]GenericStatus{StatusActive, StatusInactive, StatusDeleted}),
		"BookingStatus":    toStrings(BookingStatuses),
		"BookingAction":    toStrings(BookingActions),
		"DayType":          toStrings(DayTypes),
		"Period":           toStrings(Periods),
		"ServiceType":      toStrings(ServiceTypes),
		"StaffingType":     toStrings(StaffingTypes),
		"JobType":          toStrings(JobTypes),
		"PaymentStatus":    toStrings(PaymentStatuses),
		"PropertyType":     toStrings(PropertyTypes),
		"NotificationType": toStrings(NotificationTypes),
		"MessageStatus":    toStrings(MessageStatuses),
	}
}
