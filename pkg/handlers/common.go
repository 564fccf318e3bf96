package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"echofeed/pkg/errs"

	"github.com/gorilla/mux"
	"go.uber.org/zap"
)

type Response struct {
	Message string `json:"message"`
}

type ErrorsResponse struct {
	Errors errs.ValidationErrors `json:"errors"`
}

func WriteResponse(w http.ResponseWriter, msg string, status int) {
	resp := &Response{Message: msg}
	res, err := json.Marshal(resp)
	if err != nil {
		w.WriteHeader(status)
		return
	}

	w.WriteHeader(status)
	w.Write(res)
}

func writeJSON(logger *zap.SugaredLogger, w http.ResponseWriter, v interface{}, status int) {
	res, err := json.Marshal(v)
	if err != nil {
		logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
		return
	}

	w.WriteHeader(status)
	w.Write(res)
}

// writeError maps store errors onto the HTTP surface: rejected input is 422
// with the field list, missing identities are 404, state-invariant
// violations are 409, anything else is a 500.
func writeError(logger *zap.SugaredLogger, w http.ResponseWriter, err error) {
	var list errs.ValidationErrors
	if errors.As(err, &list) {
		res, merr := json.Marshal(&ErrorsResponse{Errors: list})
		if merr != nil {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}

		w.WriteHeader(http.StatusUnprocessableEntity)
		w.Write(res)
		return
	}

	switch {
	case errors.Is(err, errs.ErrNotFound):
		WriteResponse(w, "not found", http.StatusNotFound)
	case errors.Is(err, errs.ErrConflict):
		WriteResponse(w, "conflict", http.StatusConflict)
	default:
		logger.Error(err.Error())
		w.WriteHeader(http.StatusInternalServerError)
	}
}

func ParseUintParam(r *http.Request, name string) (uint64, error) {
	vars := mux.Vars(r)
	varStr := vars[name]
	val, err := strconv.ParseUint(varStr, 10, 0)
	if err != nil {
		return 0, fmt.Errorf("wrong id value: %v", varStr)
	}

	return val, nil
}
