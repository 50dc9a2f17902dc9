package model

type LeaderboardEntry struct {
	Rank               int                `json:"rank"`
	UserID             string             `json:"userId"`
	Username           string             `json:"username"`
	TotalSolved        int                `json:"totalSolved"`
	TotalSubmissions   int                `json:"totalSubmissions"`
	SolvedByDifficulty SolvedByDifficulty `json:"solvedByDifficulty"`
}

type SolvedByDifficulty struct {
	Easy   int `json:"easy"`
	Medium int `json:"medium"`
	Hard   int `json:"hard"`
}
