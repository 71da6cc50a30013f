package util

const (
	DriverMySQL    = "mysql"
	DriverPostgres = "postgres"
	DriverSQLite   = "sqlite"
)

const (
	LeaderboardKey          = "leaderboard:xp"
	DefaultLeaderboardLimit = 10
	MaxLeaderboardLimit     = 100
)
