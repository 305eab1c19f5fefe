package wages

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

func writeMessage(w http.ResponseWriter, status int, message string) {
	commonhandler.WriteMessage(w, status, message)
}

func decodeAndValidate(w http.ResponseWriter, r *http.Request, dst interface{}) bool {
	return commonhandler.DecodeAndValidate(w, r, dst)
}

func parseIDParam(r *http.Request, name string) (int64, error) {
	return commonhandler.ParseIDParam(r, name)
}

func parseDateRequired(value string) (time.Time, error) {
	return commonhandler.ParseDateRequired(value)
}

func parseDateParam(value string) (*time.Time, error) {
	return commonhandler.ParseDateParam(value)
}

func parseMonthRequired(value string) (time.Time, error) {
	return commonhandler.ParseMonthRequired(value)
}

func formatDate(value time.Time) string {
	return commonhandler.FormatDate(value)
}
