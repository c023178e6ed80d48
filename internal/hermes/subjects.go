package hermes

const (
	SubjectEvaluationRequest  = "appraise.evaluation.request"
	SubjectEvaluationRejected = "appraise.evaluation.rejected"
	SubjectStats              = "appraise.stats"

	StreamName   = "APPRAISE_EVENTS"
	StreamMaxAge = "168h" // 7 days
)

func SubjectEvaluationCompleted(recordID string) string {
	return "appraise.evaluation." + recordID + ".completed"
}

func SubjectRankingReset(session string) string { return "appraise.ranking." + session + ".reset" }
