package httpapi

import (
	"encoding/json"
	"net/http"

	"domiva/account"
	"domiva/authflow"
	"domiva/validation"
)

// flowResponse is the wire form of an authflow.Status.
type flowResponse struct {
	State                 string `json:"state"`
	Message               string `json:"message,omitempty"`
	Error                 string `json:"error,omitempty"`
	CanResendVerification bool   `json:"canResendVerification,omitempty"`
	Redirect              string `json:"redirect,omitempty"`
	Token                 string `json:"token,omitempty"`
}

func toFlowResponse(status authflow.Status) flowResponse {
	return flowResponse{
		State:                 status.State.String(),
		Message:               status.Success,
		Error:                 status.Error,
		CanResendVerification: status.CanResendVerification,
		Redirect:              status.Redirect,
	}
}

// httpStatusFor maps a flow outcome to an HTTP status code. Pre-submit
// rejections leave the flow idle with an error set.
func httpStatusFor(status authflow.Status) int {
	switch {
	case status.State == authflow.StateFailed:
		switch status.Kind {
		case authflow.KindRateLimited:
			return http.StatusTooManyRequests
		case authflow.KindInvalidCredentials, authflow.KindUnconfirmedEmail:
			return http.StatusUnauthorized
		case authflow.KindDuplicateEmail:
			return http.StatusConflict
		default:
			return http.StatusBadRequest
		}
	case status.Error != "":
		if status.Error == msgTooManyRequests {
			return http.StatusTooManyRequests
		}
		return http.StatusBadRequest
	default:
		return http.StatusOK
	}
}

type registrationRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Phone           string `json:"phone"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
	UserType        string `json:"userType"`
	AcceptTerms     bool   `json:"acceptTerms"`
}

func (s *Server) handleRegister(w http.ResponseWriter, r *http.Request) {
	var req registrationRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	flow := authflow.NewRegistrationFlow(s.client(r), s.limiter).WithScope(clientIP(r))
	flow.SetForm(validation.RegistrationForm{
		Name:            req.Name,
		Email:           req.Email,
		Phone:           req.Phone,
		Password:        req.Password,
		ConfirmPassword: req.ConfirmPassword,
		UserType:        req.UserType,
		AcceptTerms:     req.AcceptTerms,
	})

	status := flow.Submit(r.Context())
	respondJSON(w, httpStatusFor(status), toFlowResponse(status))
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

func (s *Server) handleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	client := s.client(r)
	flow := authflow.NewLoginFlow(client)
	flow.SetForm(validation.LoginForm{Email: req.Email, Password: req.Password})

	status := flow.Submit(r.Context())
	resp := toFlowResponse(status)
	if status.State == authflow.StateSuccess {
		resp.Token = client.SessionToken()
	}
	respondJSON(w, httpStatusFor(status), resp)
}

func (s *Server) handleLogout(w http.ResponseWriter, r *http.Request) {
	client := s.client(r)
	if err := client.SignOut(r.Context()); err != nil {
		respondError(w, http.StatusInternalServerError, authflow.UserMessage(authflow.KindUnknown))
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"state": authflow.StateIdle.String()})
}

type resetRequest struct {
	Email string `json:"email"`
}

func (s *Server) handleResetRequest(w http.ResponseWriter, r *http.Request) {
	var req resetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	flow := authflow.NewResetRequestFlow(s.client(r))
	flow.SetEmail(req.Email)

	status := flow.Submit(r.Context())
	respondJSON(w, httpStatusFor(status), toFlowResponse(status))
}

type resetCompleteRequest struct {
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirmPassword"`
}

// handleResetComplete finishes a password recovery. The recovery token from
// the emailed link rides the Authorization header.
func (s *Server) handleResetComplete(w http.ResponseWriter, r *http.Request) {
	var req resetCompleteRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	client := account.NewClient(s.accounts, s.profiles)
	if token := bearerToken(r); token != "" {
		_ = client.ResumeRecovery(r.Context(), token)
	}

	flow := authflow.NewResetCompletionFlow(client)
	flow.Mount(r.Context())

	status := flow.Submit(r.Context(), req.Password, req.ConfirmPassword)
	respondJSON(w, httpStatusFor(status), toFlowResponse(status))
}

type resendRequest struct {
	Email string `json:"email"`
}

func (s *Server) handleResendVerification(w http.ResponseWriter, r *http.Request) {
	var req resendRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Email == "" {
		respondError(w, http.StatusBadRequest, msgInvalidRequest)
		return
	}

	client := s.client(r)
	if err := client.ResendVerificationEmail(r.Context(), req.Email); err != nil {
		kind := authflow.KindOf(err)
		respondError(w, http.StatusBadRequest, authflow.UserMessage(kind))
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{"message": "Email de verificação reenviado."})
}
