package auth

import (
	"context"
	"net/http"

	"github.com/gorilla/sessions"
	"github.com/markbates/goth/gothic"
	"github.com/webfolio-dev/webfolio/models"
	"gorm.io/gorm"
)

// SessionName is the cookie holding the signed-in user's session.
const SessionName = "_webfolio_session"

type contextKey string

const userIDKey contextKey = "userID"

// NewSessionStore builds the cookie store used for both credential and
// OAuth sign-in. gothic shares the same store so a session started by a
// provider callback is indistinguishable from a credential one.
func NewSessionStore(secret string, isProd bool) *sessions.CookieStore {
	store := sessions.NewCookieStore([]byte(secret))
	store.MaxAge(86400 * 30)
	store.Options.Path = "/"
	store.Options.HttpOnly = true
	store.Options.Secure = isProd
	gothic.Store = store
	return store
}

// CurrentUser resolves the request's session to a user row. Every
// failure mode (no cookie, bad cookie, missing row, database error)
// collapses to nil so callers only ever branch on nil.
func CurrentUser(r *http.Request, db *gorm.DB) *models.User {
	session, err := gothic.Store.Get(r, SessionName)
	if err != nil {
		return nil
	}

	userID, ok := session.Values["user_id"].(uint)
	if !ok || userID == 0 {
		return nil
	}

	var user models.User
	if err := db.Where("id = ?", userID).First(&user).Error; err != nil {
		return nil
	}
	return &user
}

// SignIn stores the user's id in a fresh session cookie.
func SignIn(w http.ResponseWriter, r *http.Request, userID uint) error {
	session, err := gothic.Store.Get(r, SessionName)
	if err != nil {
		// An undecodable stale cookie still yields a usable new session.
		session, err = gothic.Store.New(r, SessionName)
		if err != nil {
			return err
		}
	}
	session.Values["user_id"] = userID
	return session.Save(r, w)
}

// SignOut expires the session cookie.
func SignOut(w http.ResponseWriter, r *http.Request) error {
	session, err := gothic.Store.Get(r, SessionName)
	if err != nil {
		return nil
	}
	session.Options.MaxAge = -1
	delete(session.Values, "user_id")
	return session.Save(r, w)
}

// UserMiddleware guards mutating routes. Requests without a resolvable
// session are rejected with a plain-text 401; otherwise the resolved
// user id is placed on the request context.
func UserMiddleware(db *gorm.DB) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			user := CurrentUser(r, db)
			if user == nil {
				http.Error(w, "Unauthenticated", http.StatusUnauthorized)
				return
			}
			ctx := context.WithValue(r.Context(), userIDKey, user.ID)
			next.ServeHTTP(w, r.WithContext(ctx))
		})
	}
}

// UserID returns the authenticated user id placed by UserMiddleware.
func UserID(ctx context.Context) (uint, bool) {
	id, ok := ctx.Value(userIDKey).(uint)
	return id, ok
}
