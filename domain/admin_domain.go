package domain

var (
	MessageSuccessGetAdminStats     = "admin stats retrieved successfully"
	MessageSuccessGetAdminAnalytics = "admin analytics retrieved successfully"
	MessageSuccessGetAdminUsers     = "users retrieved successfully"
	MessageFailedGetAdminStats      = "failed to retrieve admin stats"
	MessageFailedGetAdminAnalytics  = "failed to retrieve admin analytics"
	MessageFailedGetAdminUsers      = "failed to retrieve users"

	UnspecifiedBucket = "Unspecified"
	TopTypesLimit     = 5
)

type (
	AdminStats struct {
		TotalUsers     int64 `json:"total_users"`
		TotalDonations int64 `json:"total_donations"`
		TotalMatches   int64 `json:"total_matches"`
		TotalProofs    int64 `json:"total_proofs"`
		TotalFeedback  int64 `json:"total_feedback"`
	}

	TypeCount struct {
		Type  string `json:"type"`
		Count int64  `json:"count"`
	}

	AdminAnalytics struct {
		StatusDistribution map[string]int64 `json:"status_distribution"`
		PriorityBreakdown  map[string]int64 `json:"priority_breakdown"`
		TopTypes           []TypeCount      `json:"top_types"`
	}
)
