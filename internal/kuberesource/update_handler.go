package kuberesource

import "github.com/go-logr/logr"

// UpdateHandler receives every object touched by the resource manager's
// watch stream, whether the watch delivered it cleanly or the manager
// failed to decode/apply it. Handler errors are logged by the manager and
// never stop the stream.
type UpdateHandler[R ResourceObject] interface {
	OnUpdate(obj R, err error)
}

// UpdateHandlerFunc adapts a plain function to an UpdateHandler.
type UpdateHandlerFunc[R ResourceObject] func(obj R, err error)

// OnUpdate implements UpdateHandler.
func (f UpdateHandlerFunc[R]) OnUpdate(obj R, err error) { f(obj, err) }

// LoggingUpdateHandler is a ready-made update handler for callers with no
// reconciliation hook of their own: it just logs touched objects, at V(1)
// info verbosity on success and as an error on failure. The manager does not
// install it by itself; with a nil handler, touched objects are not reported.
type LoggingUpdateHandler[R ResourceObject] struct {
	Log logr.Logger
}

// OnUpdate implements UpdateHandler.
func (h LoggingUpdateHandler[R]) OnUpdate(obj R, err error) {
	if err != nil {
		h.Log.Error(err, "resource manager watch delivered an error")
		return
	}
	h.Log.V(1).Info("resource manager watch delivered an object",
		"name", obj.GetName(), "namespace", obj.GetNamespace(), "deleted", obj.IsDeleted())
}
