package shifts

import (
	"net/http"
	"time"

	commonhandler "shiftboard-go/internal/transport/httpserver/handler/common"
)

func writeError(w http.ResponseWriter, status int, code, message string) {
	commonhandler.WriteError(w, status, code, message)
}

func writeJSON(w http.ResponseWriter, status int, payload interface{}) {
	commonhandler.WriteJSON(w, status, payload)
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	return commonhandler.DecodeAndValidate(w, r, dst)
}

func parseIDParam(r *http.Request, name string) (int64, error) {
	return commonhandler.ParseIDParam(r, name)
}

func parseInt64Query(value string) (*int64, error) {
	return commonhandler.ParseInt64Query(value)
}

func parseDateRequired(value string) (time.Time, error) {
	return commonhandler.ParseDateRequired(value)
}

func parseDateParam(value string) (*time.Time, error) {
	return commonhandler.ParseDateParam(value)
}

func formatDate(value time.Time) string {
	return commonhandler.FormatDate(value)
}
