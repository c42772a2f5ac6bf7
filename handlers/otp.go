// Copyright (c) 2025 Daniel Kuo.
// Source-available; no permission granted to use, copy, modify, or distribute. See LICENSE.

package handlers

import (
	"net/http"

	"github.com/classelect/ballotd/cliparse"
	"github.com/classelect/ballotd/election"
	"github.com/classelect/ballotd/middleware"
	"github.com/classelect/ballotd/models"
)

type OTPHandler struct {
	issuer   *election.Issuer
	verifier *election.Verifier
	cfg      cliparse.Config
}

func NewOTPHandler(issuer *election.Issuer, verifier *election.Verifier, cfg cliparse.Config) *OTPHandler {
	return &OTPHandler{issuer: issuer, verifier: verifier, cfg: cfg}
}

// SendOTP handles POST /otp/send
func (h *OTPHandler) SendOTP(w http.ResponseWriter, r *http.Request) {
	var req models.SendOTPRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "Invalid JSON")
		return
	}

	if req.Identifier == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "identifier is required")
		return
	}

	origin := middleware.GetClientIP(r)

	result, err := h.issuer.Send(r.Context(), req.Identifier, origin)
	if err != nil {
		writeElectionError(w, err)
		return
	}

	middleware.JSONResponse(w, http.StatusOK, models.SendOTPResponse{
		Success:       true,
		MaskedContact: result.MaskedContact,
		Warning:       result.Warning,
	})
}

// VerifyOTP handles POST /otp/verify
// On success the session credential is set as an HttpOnly cookie; the
// response body never carries it.
func (h *OTPHandler) VerifyOTP(w http.ResponseWriter, r *http.Request) {
	var req models.VerifyOTPRequest
	if err := middleware.ParseJSONBody(r, &req); err != nil {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "Invalid JSON")
		return
	}

	if req.Identifier == "" || req.OTP == "" {
		middleware.ErrorResponse(w, http.StatusBadRequest, "", "identifier and otp are required")
		return
	}

	credential, err := h.verifier.Verify(r.Context(), req.Identifier, req.OTP)
	if err != nil {
		writeElectionError(w, err)
		return
	}

	setSessionCookie(w, h.cfg, credential)
	middleware.JSONResponse(w, http.StatusOK, models.VerifyOTPResponse{Success: true})
}
