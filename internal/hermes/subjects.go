package hermes

func SubjectEvaluationCompleted(id string) string { return "bookrank.evaluation." + id + ".completed" }
func SubjectEvaluationRejected(id string) string  { return "bookrank.evaluation." + id + ".rejected" }
