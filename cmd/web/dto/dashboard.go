package dto

import "kalshield/models"

// DashboardStatsDTO is the admin overview: totals, last month, and the latest five of each.
type DashboardStatsDTO struct {
	TotalUsers        int
	TotalPosts        int
	TotalComments     int
	LastMonthUsers    int
	LastMonthPosts    int
	LastMonthComments int
	Users             []models.User
	Posts             []PostCardDTO
	Comments          []models.Comment
}

// DashboardTable names a show-more table of the dashboard.
type DashboardTable string

const (
	TablePosts    DashboardTable = "posts"
	TableUsers    DashboardTable = "users"
	TableComments DashboardTable = "comments"
)

// Valid reports whether t is one of the known tables.
func (t DashboardTable) Valid() bool {
	switch t {
	case TablePosts, TableUsers, TableComments:
		return true
	}
	return false
}
