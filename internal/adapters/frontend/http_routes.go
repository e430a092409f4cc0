package frontend

import (
	"net/http"

	"github.com/emicklei/go-restful/v3"

	"github.com/mikey/phish-detector/internal/core"
)

// RegisterRoutes adds the detection web service to the container
func RegisterRoutes(container *restful.Container, handler *Handler) {
	ws := new(restful.WebService)

	ws.
		Path("/api/v1").
		Consumes(restful.MIME_JSON).
		Produces(restful.MIME_JSON)

	ws.Route(ws.GET("/health").
		To(handler.Health).
		Doc("Health check").
		Writes(HealthResponse{}).
		Returns(http.StatusOK, "OK", HealthResponse{}))

	ws.Route(ws.POST("/analyze").
		To(handler.Analyze).
		Doc("Classify one email address or URL").
		Reads(AnalyzeRequest{}).
		Writes(core.DetectionResult{}).
		Returns(http.StatusOK, "OK", core.DetectionResult{}).
		Returns(http.StatusBadRequest, "Bad Request", ErrorResponse{}))

	ws.Route(ws.POST("/analyze/batch").
		To(handler.AnalyzeBatch).
		Doc("Classify several inputs, results in input order").
		Reads(BatchRequest{}).
		Writes(BatchResponse{}).
		Returns(http.StatusOK, "OK", BatchResponse{}).
		Returns(http.StatusBadRequest, "Bad Request", ErrorResponse{}))

	ws.Route(ws.POST("/email").
		To(handler.Email).
		Doc("Score an email address with the rule engine").
		Reads(EmailRequest{}).
		Writes(core.DetectionResult{}).
		Returns(http.StatusOK, "OK", core.DetectionResult{}).
		Returns(http.StatusBadRequest, "Bad Request", ErrorResponse{}))

	ws.Route(ws.POST("/url").
		To(handler.URL).
		Doc("Classify a URL").
		Reads(URLRequest{}).
		Writes(core.DetectionResult{}).
		Returns(http.StatusOK, "OK", core.DetectionResult{}).
		Returns(http.StatusBadRequest, "Bad Request", ErrorResponse{}))

	container.Add(ws)
}
