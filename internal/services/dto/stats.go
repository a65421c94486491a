package dto

// EmployerDashboardStats aggregates what an employer sees on their dashboard.
type EmployerDashboardStats struct {
	Wallet               WalletDTO `json:"wallet"`
	InvitationsSent      int64     `json:"invitations_sent"`
	InvitationsAccepted  int64     `json:"invitations_accepted"`
	InvitationsDeclined  int64     `json:"invitations_declined"`
	InvitationsPending   int64     `json:"invitations_pending"`
	ContactsUnlocked     int64     `json:"contacts_unlocked"`
	UnreadNotifications  int64     `json:"unread_notifications"`
	SubscriptionActive   bool      `json:"subscription_active"`
	SubscriptionPlanName string    `json:"subscription_plan_name,omitempty"`
}

// CandidateDashboardStats aggregates the candidate's dashboard counters.
type CandidateDashboardStats struct {
	ProfileViews        int   `json:"profile_views"`
	InvitationsReceived int64 `json:"invitations_received"`
	InvitationsPending  int64 `json:"invitations_pending"`
	UnreadNotifications int64 `json:"unread_notifications"`
	ProfileComplete     bool  `json:"profile_complete"`
}
