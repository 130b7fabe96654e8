package http

import (
	"net/http"

	httpSwagger "github.com/swaggo/http-swagger"

	"chancebackend/internal/delivery/http/controllers"
	"chancebackend/internal/delivery/http/middleware"
	"chancebackend/internal/domain"
)

// NewRouter initializes the HTTP router with all application routes
func NewRouter(
	verifier domain.TokenVerifier,
	authController *controllers.AuthController,
	profileController *controllers.ProfileController,
	eventController *controllers.EventController,
	participantController *controllers.ParticipantController,
) *http.ServeMux {
	mux := http.NewServeMux()
	auth := middleware.RequireAuth(verifier)

	// Auth
	mux.HandleFunc("POST /api/user/signup", authController.SignUp)
	mux.HandleFunc("POST /api/user/signin", authController.SignIn)

	// Profile
	mux.HandleFunc("GET /api/profile", auth(profileController.GetProfile))
	mux.HandleFunc("PATCH /api/profile/edit", auth(profileController.EditProfile))
	mux.HandleFunc("PATCH /api/profile/change-password", auth(profileController.ChangePassword))

	// Events
	mux.HandleFunc("GET /api/event", auth(eventController.ListEvents))
	mux.HandleFunc("POST /api/event/create", auth(eventController.CreateEvent))
	mux.HandleFunc("POST /api/event/import", auth(eventController.ImportEvent))
	mux.HandleFunc("PATCH /api/event/update/{id}", auth(eventController.UpdateEvent))
	mux.HandleFunc("DELETE /api/event/delete/{id}", auth(eventController.DeleteEvent))

	// Membership
	mux.HandleFunc("PATCH /api/event/subscribe/{id}", auth(participantController.ToggleSubscribe))
	// A literal add-user segment would conflict with the subscribe and update
	// patterns above, which win precedence over this wildcard.
	mux.HandleFunc("PATCH /api/event/{id}/{action}", auth(func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("action") != "add-user" {
			http.NotFound(w, r)
			return
		}
		participantController.AddParticipant(w, r)
	}))
	mux.HandleFunc("GET /api/event/{id}/list", auth(participantController.ListParticipants))
	mux.HandleFunc("DELETE /api/event/{id}/delete-user/{user_id}", auth(participantController.RemoveParticipant))
	mux.HandleFunc("GET /api/event/{id}", auth(eventController.GetEvent))

	// Health
	mux.HandleFunc("GET /health", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Swagger
	mux.Handle("/swagger/", httpSwagger.WrapHandler)

	return mux
}
