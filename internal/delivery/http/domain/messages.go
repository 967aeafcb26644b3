package domain

var (
	MATERIAL_UPLOAD_SUCCESS = "Materials uploaded"
	MATERIAL_UPLOAD_FAILED  = "Failed to upload materials"
	MATERIAL_GET_SUCCESS    = "Material retrieved"
	MATERIAL_GET_FAILED     = "Failed to retrieve material"

	QUIZ_GENERATE_SUCCESS  = "Quiz generated"
	QUIZ_GENERATE_FALLBACK = "AI temporarily unavailable, quiz generated from template questions"
	QUIZ_GENERATE_FAILED   = "Failed to generate quiz"
	QUIZ_GET_SUCCESS       = "Quiz retrieved"
	QUIZ_GET_FAILED        = "Failed to retrieve quiz"
	QUIZ_ATTEMPT_SUCCESS   = "Attempt submitted"
	QUIZ_ATTEMPT_FAILED    = "Failed to submit attempt"

	STUDY_PLAN_GENERATE_SUCCESS = "Study plan ready"
	STUDY_PLAN_GENERATE_FAILED  = "Failed to generate study plan"
	STUDY_PLAN_GET_SUCCESS      = "Study plan retrieved"
	STUDY_PLAN_GET_FAILED       = "Failed to retrieve study plan"
	STUDY_PLAN_ANALYSIS_SUCCESS = "Performance analysis ready"
	STUDY_PLAN_ANALYSIS_FAILED  = "Failed to compute performance analysis"
	STUDY_TASK_UPDATE_SUCCESS   = "Task status updated"
	STUDY_TASK_UPDATE_FAILED    = "Failed to update task status"
)
