package api

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net"
	"net/http"
	"strings"
	"time"

	"github.com/extremtechniker/gokey/logger"
	"github.com/extremtechniker/gokey/secret"
	"github.com/extremtechniker/gokey/session"
	"github.com/extremtechniker/gokey/signing"
	"github.com/extremtechniker/gokey/token"
	"github.com/gorilla/mux"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

type ctxKey int

const subjectKey ctxKey = iota

type Server struct {
	Addr     string
	key      secret.Key
	jwtKey   []byte
	sessions *session.Manager
	srv      *http.Server
}

func NewServer(addr string, key secret.Key, sessions *session.Manager) *Server {
	s := &Server{
		Addr:     addr,
		key:      key,
		jwtKey:   token.SigningKey(key),
		sessions: sessions,
	}
	s.srv = &http.Server{
		Addr:              addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 10 * time.Second,
	}
	return s
}

func (s *Server) Router() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", s.Health).Methods("GET")
	r.Handle("/metrics", promhttp.Handler()).Methods("GET")

	// Session management, bearer token required
	sr := r.PathPrefix("/sessions").Subrouter()
	sr.Use(s.jwtMiddleware)
	sr.HandleFunc("", s.CreateSession).Methods("POST")
	sr.HandleFunc("/current", s.GetSession).Methods("GET")
	sr.HandleFunc("/current", s.DeleteSession).Methods("DELETE")

	return r
}

func (s *Server) Run() error {
	l, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	return s.Serve(l)
}

// Serve blocks until Shutdown is called or the listener fails.
func (s *Server) Serve(l net.Listener) error {
	logger.Logger.Infof("HTTP API listening on %s (%s)", l.Addr(), s.key)
	if err := s.srv.Serve(l); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	return s.srv.Shutdown(ctx)
}

// ---------------- JWT Middleware ----------------
func (s *Server) jwtMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		tokenStr := r.Header.Get("Authorization")
		if !strings.HasPrefix(tokenStr, "Bearer ") {
			authFailures.WithLabelValues("missing").Inc()
			http.Error(w, "missing bearer token", http.StatusUnauthorized)
			return
		}
		tokenStr = strings.TrimPrefix(tokenStr, "Bearer ")

		claims, err := token.Parse(s.jwtKey, tokenStr)
		if err != nil {
			authFailures.WithLabelValues("invalid").Inc()
			logger.Logger.Debugf("Invalid token: %v", err)
			http.Error(w, "invalid token", http.StatusUnauthorized)
			return
		}
		ctx := context.WithValue(r.Context(), subjectKey, claims.Subject)
		next.ServeHTTP(w, r.WithContext(ctx))
	})
}

func subjectFrom(r *http.Request) string {
	sub, _ := r.Context().Value(subjectKey).(string)
	return sub
}

func (s *Server) Health(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status":     "ok",
		"key_source": string(s.key.Source),
	})
}

func (s *Server) CreateSession(w http.ResponseWriter, r *http.Request) {
	var input struct {
		Data map[string]string `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&input); err != nil && !errors.Is(err, io.EOF) {
		http.Error(w, "invalid json", http.StatusBadRequest)
		return
	}

	sess, cookie, err := s.sessions.Create(r.Context(), subjectFrom(r), input.Data)
	if err != nil {
		sessionOps.WithLabelValues("create", "error").Inc()
		logger.Logger.Errorf("failed to create session: %v", err)
		http.Error(w, "failed to create session", http.StatusInternalServerError)
		return
	}
	sessionOps.WithLabelValues("create", "ok").Inc()

	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    cookie,
		Path:     "/",
		Expires:  sess.ExpiresAt,
		HttpOnly: true,
		Secure:   r.TLS != nil,
		SameSite: http.SameSiteLaxMode,
	})
	writeJSON(w, http.StatusCreated, sess)
}

func (s *Server) GetSession(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(session.CookieName)
	if err != nil {
		http.Error(w, "missing session cookie", http.StatusUnauthorized)
		return
	}

	sess, err := s.sessions.Get(r.Context(), c.Value)
	if err != nil {
		s.sessionError(w, "get", err)
		return
	}
	if sess.Subject != subjectFrom(r) {
		sessionOps.WithLabelValues("get", "rejected").Inc()
		http.Error(w, "session belongs to another subject", http.StatusForbidden)
		return
	}
	sessionOps.WithLabelValues("get", "ok").Inc()
	writeJSON(w, http.StatusOK, sess)
}

func (s *Server) DeleteSession(w http.ResponseWriter, r *http.Request) {
	c, err := r.Cookie(session.CookieName)
	if err != nil {
		http.Error(w, "missing session cookie", http.StatusUnauthorized)
		return
	}

	sess, err := s.sessions.Peek(r.Context(), c.Value)
	if err != nil {
		s.sessionError(w, "destroy", err)
		return
	}
	if sess.Subject != subjectFrom(r) {
		sessionOps.WithLabelValues("destroy", "rejected").Inc()
		http.Error(w, "session belongs to another subject", http.StatusForbidden)
		return
	}

	if err := s.sessions.Destroy(r.Context(), c.Value); err != nil {
		s.sessionError(w, "destroy", err)
		return
	}
	sessionOps.WithLabelValues("destroy", "ok").Inc()

	http.SetCookie(w, &http.Cookie{
		Name:     session.CookieName,
		Value:    "",
		Path:     "/",
		MaxAge:   -1,
		HttpOnly: true,
	})
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) sessionError(w http.ResponseWriter, op string, err error) {
	switch {
	case errors.Is(err, signing.ErrBadSignature),
		errors.Is(err, session.ErrNotFound),
		errors.Is(err, session.ErrExpired):
		sessionOps.WithLabelValues(op, "rejected").Inc()
		logger.Logger.Debugf("session %s rejected: %v", op, err)
		http.Error(w, "invalid session", http.StatusUnauthorized)
	default:
		sessionOps.WithLabelValues(op, "error").Inc()
		logger.Logger.Errorf("session %s failed: %v", op, err)
		http.Error(w, "session store unavailable", http.StatusInternalServerError)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
