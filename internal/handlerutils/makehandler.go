package handlerutils

import (
	"errors"
	"log"
	"net/http"

	"github.com/menna-17/backend-craftora/internal/servererrors"
)

// MakeHandler adapts an [APIHandler] into a [http.HandlerFunc], translating
// returned errors into JSON responses in one place. Errors that are not
// *servererrors.ServerError are logged and masked as a plain 500 so internal
// detail never reaches the client.
func MakeHandler(h APIHandler) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		err := h(w, r)
		if err == nil {
			return
		}

		log.Println(err)

		var serverError *servererrors.ServerError
		if errors.As(err, &serverError) {
			WriteErrorJSON(
				w,
				serverError.StatusCode,
				serverError.Error(),
				serverError.Errors,
			)
			return
		}

		WriteErrorJSON(
			w,
			http.StatusInternalServerError,
			"something went wrong",
			nil,
		)
	}
}
