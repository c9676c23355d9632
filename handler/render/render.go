package render

import (
	"encoding/json"
	"net/http"

	"blue/core"
	"blue/handler/codes"

	"github.com/sirupsen/logrus"
)

type H map[string]interface{}

func write(w http.ResponseWriter, statusCode int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)

	if err := json.NewEncoder(w).Encode(v); err != nil {
		logrus.WithError(err).Errorln("render.write")
	}
}

// JSON render with json
func JSON(w http.ResponseWriter, v interface{}) {
	write(w, http.StatusOK, v)
}

// Data render v wrapped in the data envelope
func Data(w http.ResponseWriter, v interface{}) {
	write(w, http.StatusOK, dataResponse{Data: v})
}

// Error write error
func Error(w http.ResponseWriter, statusCode int, errCode core.ErrorCode, err error) {
	write(w, statusCode, errorResponse{Code: int(errCode), Msg: err.Error()})
}

// Err write err with the http status of its error code
func Err(w http.ResponseWriter, err error) {
	code := core.CodeOf(err)
	Error(w, codes.HTTPStatus(code), code, err)
}

// BadRequest bad request error
func BadRequest(w http.ResponseWriter, err error) {
	Error(w, http.StatusBadRequest, core.ErrInvalidInput, err)
}

// NotFoundRequest not found request error
func NotFoundRequest(w http.ResponseWriter, err error) {
	Error(w, http.StatusNotFound, core.ErrUnknown, err)
}
