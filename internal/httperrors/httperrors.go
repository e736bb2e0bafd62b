package httperrors

import (
	"net/http"

	jsoniter "github.com/json-iterator/go"

	"gitlab.com/phone-carrier/carrier-lookup/internal/errortracking"
	"gitlab.com/phone-carrier/carrier-lookup/internal/logging"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

type content struct {
	status  int
	message string
}

var (
	content400 = content{
		http.StatusBadRequest,
		"The request must be a JSON object with country, prefix and number.",
	}
	content404 = content{
		http.StatusNotFound,
		"The carrier of the phone number could not be resolved.",
	}
	content500 = content{
		http.StatusInternalServerError,
		"Whoops, something went wrong on our end.",
	}
	content503 = content{
		http.StatusServiceUnavailable,
		"The service is not ready to serve lookups.",
	}
)

type errorBody struct {
	Status  int    `json:"status"`
	Message string `json:"message"`
}

func serveErrorJSON(w http.ResponseWriter, c content) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(c.status)
	json.NewEncoder(w).Encode(errorBody{Status: c.status, Message: c.message})
}

// Serve400 returns a 400 error response / JSON body to the http.ResponseWriter
func Serve400(w http.ResponseWriter) {
	serveErrorJSON(w, content400)
}

// Serve404 returns a 404 error response / JSON body to the http.ResponseWriter
func Serve404(w http.ResponseWriter) {
	serveErrorJSON(w, content404)
}

// Serve500 returns a 500 error response / JSON body to the http.ResponseWriter
func Serve500(w http.ResponseWriter) {
	serveErrorJSON(w, content500)
}

// Serve500WithRequest returns a 500 error response / JSON body to the http.ResponseWriter
// and reports err
func Serve500WithRequest(w http.ResponseWriter, r *http.Request, reason string, err error) {
	logging.LogRequest(r).WithError(err).Error(reason)
	errortracking.CaptureErrWithReqAndStackTrace(err, r)
	serveErrorJSON(w, content500)
}

// Serve503 returns a 503 error response / JSON body to the http.ResponseWriter
func Serve503(w http.ResponseWriter) {
	serveErrorJSON(w, content503)
}
