package controllers

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	"github.com/User-dev-volt/poe2-optimizer-v6-sub003/pkg/util"
)

type envelope map[string]interface{}

func (api *optimizerAPI) writeJSON(w http.ResponseWriter, status int, data envelope, headers http.Header) error {
	js, err := json.Marshal(data)
	if err != nil {
		return err
	}
	js = append(js, '\n')

	for key, value := range headers {
		w.Header()[key] = value
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(js)
	return nil
}

func (api *optimizerAPI) readJSON(w http.ResponseWriter, r *http.Request, dst interface{}) error {
	maxBytes := 1_048_576
	r.Body = http.MaxBytesReader(w, r.Body, int64(maxBytes))

	dec := json.NewDecoder(r.Body)
	dec.DisallowUnknownFields()
	if err := dec.Decode(dst); err != nil {
		return fmt.Errorf("malformed request body: %w", err)
	}
	if err := dec.Decode(&struct{}{}); err != io.EOF {
		return errors.New("request body must contain a single JSON object")
	}
	return nil
}

func (api *optimizerAPI) errorResponse(w http.ResponseWriter, r *http.Request, status int, code string, message string) {
	var resp errorResponse
	resp.Error.Code = code
	resp.Error.Message = message

	js, err := json.Marshal(resp)
	if err != nil {
		w.WriteHeader(http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_, _ = w.Write(js)
}

func (api *optimizerAPI) BadRequestResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.errorResponse(w, r, http.StatusBadRequest, "BAD_REQUEST", err.Error())
}

func (api *optimizerAPI) ServerErrorResponse(w http.ResponseWriter, r *http.Request, err error) {
	api.log.Error("internal server error")
	api.errorResponse(w, r, http.StatusInternalServerError, "INTERNAL", util.MessageInternalServerError)
}

// getStatusCode maps domain error codes onto http statuses. recoverable
// calculation failures never reach here, only run-aborting errors do.
func (api *optimizerAPI) getStatusCode(w http.ResponseWriter, r *http.Request, err error) {
	var domainErr *util.Error
	if errors.As(err, &domainErr) {
		switch domainErr.Code() {
		case util.ErrInvalidConfiguration, util.ErrBadParamInput:
			api.errorResponse(w, r, http.StatusBadRequest, "INVALID_CONFIGURATION", err.Error())
			return
		case util.ErrInvalidNode:
			api.errorResponse(w, r, http.StatusBadRequest, "INVALID_NODE", err.Error())
			return
		case util.ErrNotFound:
			api.errorResponse(w, r, http.StatusNotFound, "NOT_FOUND", err.Error())
			return
		}
	}
	api.ServerErrorResponse(w, r, err)
}

func translateError(err error, trans ut.Translator) []error {
	if err == nil {
		return nil
	}
	var out []error
	var validatorErrs validator.ValidationErrors
	if errors.As(err, &validatorErrs) {
		for _, e := range validatorErrs {
			out = append(out, errors.New(e.Translate(trans)))
		}
	}
	return out
}
