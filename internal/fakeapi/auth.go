package fakeapi

import (
	"net/http"
	"strings"
)

type handler func(w http.ResponseWriter, r *http.Request, u *user)

func bearer(r *http.Request) string {
	token, ok := strings.CutPrefix(r.Header.Get("Authorization"), "Bearer ")
	if !ok {
		return ""
	}
	return strings.TrimSpace(token)
}

// authenticate resolves the caller of r. The token must be validly signed,
// unexpired and still live.
func (s *Server) authenticate(r *http.Request) (*user, bool) {
	token := bearer(r)
	if token == "" {
		return nil, false
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := parseToken(token, s.secret, s.now(), false)
	if err != nil || !s.live[c.ID] {
		return nil, false
	}
	u := s.userByID(c.userID())
	if u == nil || !u.Active {
		return nil, false
	}
	return u, true
}

func (s *Server) authed(h handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u, ok := s.authenticate(r)
		if !ok {
			writeError(w, http.StatusUnauthorized, "Authentication required")
			return
		}
		h(w, r, u)
	})
}

func (s *Server) adminOnly(h handler) http.Handler {
	return s.authed(func(w http.ResponseWriter, r *http.Request, u *user) {
		if !u.admin() {
			writeError(w, http.StatusForbidden, "Admin access required")
			return
		}
		h(w, r, u)
	})
}

// issue mints a token for u. Callers hold mu.
func (s *Server) issue(u *user) (string, error) {
	token, jti, err := generateToken(u.ID, u.admin(), s.secret, s.now(), s.ttl)
	if err != nil {
		return "", err
	}
	s.live[jti] = true
	return token, nil
}

func (s *Server) login(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}
	if err := readJSON(r, &in); err != nil || in.Email == "" || in.Password == "" {
		writeJSON(w, http.StatusBadRequest, obj{"error": "email and password are required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	u := find(s.users, func(u *user) bool { return strings.EqualFold(u.Email, in.Email) })
	if u == nil || u.Password != in.Password || !u.Active {
		writeError(w, http.StatusUnauthorized, "Invalid email or password")
		return
	}
	token, err := s.issue(u)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, obj{"token": token, "user": userView(u)})
}

func (s *Server) register(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Username string `json:"username"`
		Email    string `json:"email"`
		Password string `json:"password"`
		FullName string `json:"full_name"`
	}
	if err := readJSON(r, &in); err != nil || in.Username == "" || in.Email == "" || in.Password == "" {
		writeJSON(w, http.StatusBadRequest, obj{"error": "username, email and password are required"})
		return
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	taken := find(s.users, func(u *user) bool {
		return strings.EqualFold(u.Email, in.Email) || strings.EqualFold(u.Username, in.Username)
	})
	if taken != nil {
		writeJSON(w, http.StatusConflict, obj{"error": obj{"message": "Username or email already taken"}})
		return
	}

	u := &user{
		ID:        s.id(),
		Username:  in.Username,
		Email:     in.Email,
		Password:  in.Password,
		FullName:  in.FullName,
		Role:      "user",
		Active:    true,
		CreatedAt: s.now(),
	}
	s.users = append(s.users, u)

	token, err := s.issue(u)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusCreated, obj{"data": obj{"accessToken": token, "user": userView(u)}})
}

func (s *Server) logout(w http.ResponseWriter, r *http.Request, _ *user) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if c, err := parseToken(bearer(r), s.secret, s.now(), true); err == nil {
		delete(s.live, c.ID)
		s.revoked[c.ID] = true
	}
	writeJSON(w, http.StatusOK, obj{"message": "Logged out"})
}

func (s *Server) me(w http.ResponseWriter, _ *http.Request, u *user) {
	s.mu.Lock()
	defer s.mu.Unlock()
	writeJSON(w, http.StatusOK, obj{"user": userView(u)})
}

// refresh exchanges a validly signed, unrevoked token (expired or not)
// for a new one and revokes the old one.
func (s *Server) refresh(w http.ResponseWriter, r *http.Request) {
	s.mu.Lock()
	defer s.mu.Unlock()

	c, err := parseToken(bearer(r), s.secret, s.now(), true)
	if err != nil || s.revoked[c.ID] {
		writeError(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}
	u := s.userByID(c.userID())
	if u == nil || !u.Active {
		writeError(w, http.StatusUnauthorized, "Invalid refresh token")
		return
	}

	token, err := s.issue(u)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	delete(s.live, c.ID)
	s.revoked[c.ID] = true
	s.refreshes++
	writeJSON(w, http.StatusOK, obj{"accessToken": token})
}
