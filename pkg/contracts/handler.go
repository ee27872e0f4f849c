package contracts

import "github.com/julienschmidt/httprouter"

// Handler is implemented by every domain handler so the application can
// mount them all on a shared router without knowing their routes.
type Handler interface {
	RegisterRoutes(*httprouter.Router)
}
