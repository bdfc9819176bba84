package server

import (
	"encoding/json"
	"net/http"

	openapi "github.com/swaggest/openapi-go"
	"github.com/swaggest/openapi-go/openapi3"
)

// ErrorResponse is returned for all error responses.
type ErrorResponse struct {
	Error string `json:"error"`
}

func newOpenAPISpec() *openapi3.Spec {
	r := openapi3.NewReflector()
	r.Spec.Info.Title = "GeoHunt API"
	r.Spec.Info.Version = "0.1.0"
	r.Spec.Info.WithDescription("Backend API for the GeoHunt treasure-hunt game.")

	// GET /healthz
	getHealthz, _ := r.NewOperationContext(http.MethodGet, "/healthz")
	getHealthz.SetSummary("Health check")
	getHealthz.SetDescription("Returns the health status of backend dependencies.")
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getHealthz.AddRespStructure(HealthResponse{}, openapi.WithHTTPStatus(http.StatusServiceUnavailable))
	_ = r.AddOperation(getHealthz)

	// POST /api/teams
	postTeams, _ := r.NewOperationContext(http.MethodPost, "/api/teams")
	postTeams.SetSummary("Create team")
	postTeams.SetDescription("Registers a team for a session. Returns the team token used by all player calls.")
	postTeams.AddReqStructure(CreateTeamRequest{})
	postTeams.AddRespStructure(CreateTeamResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	postTeams.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(postTeams)

	// GET /api/game/state
	getState, _ := r.NewOperationContext(http.MethodGet, "/api/game/state")
	getState.SetSummary("Get game state")
	getState.SetDescription("Returns the team's full checkpoint view. Requires Bearer token.")
	getState.AddRespStructure(GameStateResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getState.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getState)

	// POST /api/game/answer
	postAnswer, _ := r.NewOperationContext(http.MethodPost, "/api/game/answer")
	postAnswer.SetSummary("Answer riddle")
	postAnswer.SetDescription("Checks a riddle answer; a correct answer unlocks the next checkpoint. Requires Bearer token.")
	postAnswer.AddReqStructure(AnswerRequest{})
	postAnswer.AddRespStructure(AnswerResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postAnswer.AddRespStructure(AnswerResponse{}, openapi.WithHTTPStatus(http.StatusUnprocessableEntity))
	postAnswer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	postAnswer.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postAnswer)

	// POST /api/game/submission
	postSubmission, _ := r.NewOperationContext(http.MethodPost, "/api/game/submission")
	postSubmission.SetSummary("Submit for validation")
	postSubmission.SetDescription("Creates a manual-validation request for a checkpoint. Requires Bearer token.")
	postSubmission.AddReqStructure(SubmissionRequest{})
	postSubmission.AddRespStructure(SubmissionResponse{}, openapi.WithHTTPStatus(http.StatusCreated))
	postSubmission.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	postSubmission.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postSubmission)

	// POST /api/game/reset
	postReset, _ := r.NewOperationContext(http.MethodPost, "/api/game/reset")
	postReset.SetSummary("Restart hunt")
	postReset.SetDescription("Resets the team's progress to the initial state. Requires Bearer token.")
	postReset.AddRespStructure(TeamResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postReset.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postReset)

	// GET /api/game/events
	getEvents, _ := r.NewOperationContext(http.MethodGet, "/api/game/events")
	getEvents.SetSummary("Player event stream")
	getEvents.SetDescription("Server-Sent Events stream of full game-state snapshots. Pass token as query parameter.")
	getEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(getEvents)

	// GET /api/game/positions
	getPositions, _ := r.NewOperationContext(http.MethodGet, "/api/game/positions")
	getPositions.SetSummary("Position stream")
	getPositions.SetDescription("WebSocket over which the client streams position samples; found checkpoints are echoed back. Pass token as query parameter.")
	getPositions.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusSwitchingProtocols),
		openapi.WithContentType("text/plain"))
	_ = r.AddOperation(getPositions)

	// POST /api/admin/login
	postLogin, _ := r.NewOperationContext(http.MethodPost, "/api/admin/login")
	postLogin.SetSummary("Admin login")
	postLogin.SetDescription("Authenticate with the shared operator password. Sets admin_session cookie.")
	postLogin.AddReqStructure(AdminLoginRequest{})
	postLogin.AddRespStructure(AdminMeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	postLogin.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(postLogin)

	// POST /api/admin/logout
	postLogout, _ := r.NewOperationContext(http.MethodPost, "/api/admin/logout")
	postLogout.SetSummary("Admin logout")
	postLogout.SetDescription("Clears admin session and cookie.")
	postLogout.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	_ = r.AddOperation(postLogout)

	// GET /api/admin/me
	getMe, _ := r.NewOperationContext(http.MethodGet, "/api/admin/me")
	getMe.SetSummary("Current admin")
	getMe.SetDescription("Reports whether the admin_session cookie is valid.")
	getMe.AddRespStructure(AdminMeResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	getMe.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(getMe)

	// GET /api/admin/teams
	listTeams, _ := r.NewOperationContext(http.MethodGet, "/api/admin/teams")
	listTeams.SetSummary("List teams")
	listTeams.SetDescription("Returns all teams in a session, creation order, with live positions. Requires admin_session cookie.")
	listTeams.AddRespStructure([]TeamResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	listTeams.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(listTeams)

	// POST /api/admin/teams/{teamID}/unlock
	unlockTeam, _ := r.NewOperationContext(http.MethodPost, "/api/admin/teams/{teamID}/unlock")
	unlockTeam.SetSummary("Override unlock")
	unlockTeam.SetDescription("Force-unlocks a checkpoint for a team. Idempotent. Requires admin_session cookie.")
	unlockTeam.AddReqStructure(struct {
		TeamID string `path:"teamID"`
	}{})
	unlockTeam.AddReqStructure(AdminUnlockRequest{})
	unlockTeam.AddRespStructure(TeamResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	unlockTeam.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(unlockTeam)

	// POST /api/admin/teams/{teamID}/reset
	resetTeamOp, _ := r.NewOperationContext(http.MethodPost, "/api/admin/teams/{teamID}/reset")
	resetTeamOp.SetSummary("Reset team")
	resetTeamOp.SetDescription("Resets a team's progress to the initial state. Requires admin_session cookie.")
	resetTeamOp.AddRespStructure(TeamResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	resetTeamOp.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(resetTeamOp)

	// PUT /api/admin/teams/{teamID}/status
	setStatus, _ := r.NewOperationContext(http.MethodPut, "/api/admin/teams/{teamID}/status")
	setStatus.SetSummary("Set team status")
	setStatus.SetDescription("Marks a team active or stuck. Requires admin_session cookie.")
	setStatus.AddReqStructure(AdminStatusRequest{})
	setStatus.AddRespStructure(TeamResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	setStatus.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusBadRequest))
	_ = r.AddOperation(setStatus)

	// DELETE /api/admin/teams/{teamID}
	deleteTeamOp, _ := r.NewOperationContext(http.MethodDelete, "/api/admin/teams/{teamID}")
	deleteTeamOp.SetSummary("Delete team")
	deleteTeamOp.SetDescription("Removes a team and its validation requests. Requires admin_session cookie.")
	deleteTeamOp.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK))
	deleteTeamOp.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	_ = r.AddOperation(deleteTeamOp)

	// GET /api/admin/validations
	listValidations, _ := r.NewOperationContext(http.MethodGet, "/api/admin/validations")
	listValidations.SetSummary("List pending validations")
	listValidations.SetDescription("Returns pending validation requests for a session, newest first. Requires admin_session cookie.")
	listValidations.AddRespStructure([]ValidationResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	listValidations.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusUnauthorized))
	_ = r.AddOperation(listValidations)

	// POST /api/admin/validations/{validationID}
	resolveValidation, _ := r.NewOperationContext(http.MethodPost, "/api/admin/validations/{validationID}")
	resolveValidation.SetSummary("Resolve validation")
	resolveValidation.SetDescription("Approves or rejects a pending validation request. Terminal. Requires admin_session cookie.")
	resolveValidation.AddReqStructure(struct {
		ValidationID string `path:"validationID"`
	}{})
	resolveValidation.AddReqStructure(AdminResolveRequest{})
	resolveValidation.AddRespStructure(ValidationResponse{}, openapi.WithHTTPStatus(http.StatusOK))
	resolveValidation.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusNotFound))
	resolveValidation.AddRespStructure(ErrorResponse{}, openapi.WithHTTPStatus(http.StatusConflict))
	_ = r.AddOperation(resolveValidation)

	// GET /api/admin/events
	adminEvents, _ := r.NewOperationContext(http.MethodGet, "/api/admin/events")
	adminEvents.SetSummary("Admin event stream")
	adminEvents.SetDescription("Server-Sent Events stream of full session snapshots. Requires admin_session cookie.")
	adminEvents.AddRespStructure(nil, openapi.WithHTTPStatus(http.StatusOK),
		openapi.WithContentType("text/event-stream"))
	_ = r.AddOperation(adminEvents)

	return r.Spec
}

func handleOpenAPI() http.HandlerFunc {
	spec := newOpenAPISpec()
	data, _ := json.MarshalIndent(spec, "", "  ")

	return func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json; charset=utf-8")
		w.Write(data)
	}
}
