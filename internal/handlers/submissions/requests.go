package submissions

type SubmitRequest struct {
	RoundID    int64  `json:"roundId"`
	QuestionID int64  `json:"questionId"`
	Code       string `json:"code"`
	Language   string `json:"language"`
}

type RunRequest struct {
	Language string `json:"language"`
	Code     string `json:"code"`
	Stdin    string `json:"stdin"`
}

type SolvedQuestionsResponse struct {
	UserID      int64   `json:"userId"`
	QuestionIDs []int64 `json:"questionIds"`
}
