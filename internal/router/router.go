package router

import (
	"fmt"
	"net/http"
	"time"

	"github.com/aws/aws-sdk-go-v2/service/s3"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/httprate"
	"github.com/markbates/goth/gothic"
	"github.com/webfolio-dev/webfolio/internal/auth"
	"github.com/webfolio-dev/webfolio/internal/handlers"
	"gorm.io/gorm"
)

// New wires every route. Public reads live under /api/{userID} and need
// no session; every mutating verb goes through the session middleware.
func New(db *gorm.DB, s3Client *s3.Client) chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)

	requireUser := auth.UserMiddleware(db)
	limit := httprate.Limit(
		20,
		1*time.Minute,
		httprate.WithKeyFuncs(httprate.KeyByIP, httprate.KeyByEndpoint),
	)

	r.Get("/health", handlers.HealthCheck)

	// OAuth sign-in
	r.Get("/auth/{provider}/callback", func(w http.ResponseWriter, r *http.Request) {
		handlers.OAuthCallbackHandler(w, r, db)
	})
	r.Post("/auth/{provider}", func(w http.ResponseWriter, r *http.Request) {
		if gothUser, err := gothic.CompleteUserAuth(w, r); err == nil {
			fmt.Fprintf(w, "User already authenticated: %s\n", gothUser.Name)
		} else {
			gothic.BeginAuthHandler(w, r)
		}
	})
	r.Post("/logout/{provider}", func(w http.ResponseWriter, r *http.Request) {
		gothic.Logout(w, r)
	})

	r.Route("/api", func(r chi.Router) {
		// Credential sign-in
		r.Post("/register", func(w http.ResponseWriter, r *http.Request) {
			handlers.RegisterHandler(w, r, db)
		})
		r.Post("/login", func(w http.ResponseWriter, r *http.Request) {
			handlers.LoginHandler(w, r, db)
		})
		r.Post("/logout", handlers.LogoutHandler)
		r.Get("/me", func(w http.ResponseWriter, r *http.Request) {
			handlers.MeHandler(w, r, db)
		})

		r.Group(func(r chi.Router) {
			r.Use(requireUser)
			r.Use(limit)
			r.Post("/upload", func(w http.ResponseWriter, r *http.Request) {
				handlers.UploadImageHandler(w, r, db, s3Client)
			})
		})

		r.Route("/user/{userID}", func(r chi.Router) {
			r.Get("/", func(w http.ResponseWriter, r *http.Request) {
				handlers.GetUserHandler(w, r, db)
			})
			r.With(requireUser).Patch("/", func(w http.ResponseWriter, r *http.Request) {
				handlers.UpdateUserSettingsHandler(w, r, db)
			})
		})

		r.Route("/{userID}", func(r chi.Router) {
			r.Route("/roles", func(r chi.Router) {
				r.Get("/", func(w http.ResponseWriter, r *http.Request) {
					handlers.ListRolesHandler(w, r, db)
				})
				r.With(requireUser).Post("/", func(w http.ResponseWriter, r *http.Request) {
					handlers.CreateRoleHandler(w, r, db)
				})
				r.Route("/{roleID}", func(r chi.Router) {
					r.Get("/", func(w http.ResponseWriter, r *http.Request) {
						handlers.GetRoleHandler(w, r, db)
					})
					r.With(requireUser).Patch("/", func(w http.ResponseWriter, r *http.Request) {
						handlers.UpdateRoleHandler(w, r, db)
					})
					r.With(requireUser).Delete("/", func(w http.ResponseWriter, r *http.Request) {
						handlers.DeleteRoleHandler(w, r, db)
					})
				})
			})

			r.Route("/skills", func(r chi.Router) {
				r.Get("/", func(w http.ResponseWriter, r *http.Request) {
					handlers.ListSkillsHandler(w, r, db)
				})
				r.With(requireUser).Post("/", func(w http.ResponseWriter, r *http.Request) {
					handlers.CreateSkillHandler(w, r, db)
				})
				r.Route("/{skillID}", func(r chi.Router) {
					r.Get("/", func(w http.ResponseWriter, r *http.Request) {
						handlers.GetSkillHandler(w, r, db)
					})
					r.With(requireUser).Patch("/", func(w http.ResponseWriter, r *http.Request) {
						handlers.UpdateSkillHandler(w, r, db)
					})
					r.With(requireUser).Delete("/", func(w http.ResponseWriter, r *http.Request) {
						handlers.DeleteSkillHandler(w, r, db)
					})
				})
			})

			r.Route("/works", func(r chi.Router) {
				r.Get("/", func(w http.ResponseWriter, r *http.Request) {
					handlers.ListWorksHandler(w, r, db)
				})
				r.With(requireUser).Post("/", func(w http.ResponseWriter, r *http.Request) {
					handlers.CreateWorkHandler(w, r, db)
				})
				r.Route("/{workID}", func(r chi.Router) {
					r.Get("/", func(w http.ResponseWriter, r *http.Request) {
						handlers.GetWorkHandler(w, r, db)
					})
					r.With(requireUser).Patch("/", func(w http.ResponseWriter, r *http.Request) {
						handlers.UpdateWorkHandler(w, r, db)
					})
					r.With(requireUser).Delete("/", func(w http.ResponseWriter, r *http.Request) {
						handlers.DeleteWorkHandler(w, r, db)
					})
				})
			})

			r.Route("/educations", func(r chi.Router) {
				r.Get("/", func(w http.ResponseWriter, r *http.Request) {
					handlers.ListEducationsHandler(w, r, db)
				})
				r.With(requireUser).Post("/", func(w http.ResponseWriter, r *http.Request) {
					handlers.CreateEducationHandler(w, r, db)
				})
				r.Route("/{educationID}", func(r chi.Router) {
					r.Get("/", func(w http.ResponseWriter, r *http.Request) {
						handlers.GetEducationHandler(w, r, db)
					})
					r.With(requireUser).Patch("/", func(w http.ResponseWriter, r *http.Request) {
						handlers.UpdateEducationHandler(w, r, db)
					})
					r.With(requireUser).Delete("/", func(w http.ResponseWriter, r *http.Request) {
						handlers.DeleteEducationHandler(w, r, db)
					})
				})
			})

			r.Route("/projects", func(r chi.Router) {
				r.Get("/", func(w http.ResponseWriter, r *http.Request) {
					handlers.ListProjectsHandler(w, r, db)
				})
				r.With(requireUser).Post("/", func(w http.ResponseWriter, r *http.Request) {
					handlers.CreateProjectHandler(w, r, db)
				})
				r.Route("/{projectID}", func(r chi.Router) {
					r.Get("/", func(w http.ResponseWriter, r *http.Request) {
						handlers.GetProjectHandler(w, r, db)
					})
					r.With(requireUser).Patch("/", func(w http.ResponseWriter, r *http.Request) {
						handlers.UpdateProjectHandler(w, r, db)
					})
					r.With(requireUser).Delete("/", func(w http.ResponseWriter, r *http.Request) {
						handlers.DeleteProjectHandler(w, r, db)
					})
				})
			})
		})
	})

	return r
}
