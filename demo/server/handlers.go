package main

import (
	"bytes"
	"errors"
	"fmt"
	"math"
	"strconv"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/recover"
	"go.uber.org/zap"

	orthodrome "github.com/tingold/orb-orthodrome"
)

// api serves the orthodromic engine over HTTP.
type api struct {
	registry *orthodrome.Registry
	mercator *orthodrome.Mercator
	geometry GeometryConfig
	log      *zap.Logger
}

func newAPI(registry *orthodrome.Registry, cfg GeometryConfig, log *zap.Logger) *api {
	return &api{
		registry: registry,
		mercator: orthodrome.NewMercator(cfg.MercatorFactor),
		geometry: cfg,
		log:      log,
	}
}

// newApp builds the fiber application with middleware and routes.
func newApp(a *api, cfg ServerConfig) *fiber.App {
	app := fiber.New(fiber.Config{
		ReadTimeout:           time.Duration(cfg.ReadTimeout) * time.Second,
		WriteTimeout:          time.Duration(cfg.WriteTimeout) * time.Second,
		BodyLimit:             1024 * 1024,
		AppName:               "orthodrome demo",
		DisableStartupMessage: true,
	})
	app.Use(recover.New())
	app.Use(requestLogger(a.log))
	app.Use(metricsMiddleware())

	app.Get("/metrics", metricsHandler())

	v1 := app.Group("/v1")
	v1.Get("/health", a.health)
	v1.Get("/heading-distance", a.headingDistance)
	v1.Get("/extension", a.extension)
	v1.Get("/ellipse", a.ellipse)
	v1.Get("/arc", a.arc)
	v1.Get("/mercator", a.projectMercator)
	v1.Post("/decode", a.decode)

	return app
}

func (a *api) health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status": "ok",
		"datums": a.registry.IDs(),
	})
}

func (a *api) headingDistance(c *fiber.Ctx) error {
	v, err := queryFloats(c, "lat1", "lon1", "lat2", "lon2")
	if err != nil {
		return errBadRequest(c, err.Error())
	}
	datum, err := a.datum(c)
	if err != nil {
		return errNotFound(c, err.Error())
	}

	hd := orthodrome.OrthodromicHeadingDistance(
		orthodrome.NewPoint2D(v[0], v[1], datum),
		orthodrome.NewPoint2D(v[2], v[3], datum),
	)
	return c.JSON(hd)
}

func (a *api) extension(c *fiber.Ctx) error {
	v, err := queryFloats(c, "lat", "lon", "distance", "heading")
	if err != nil {
		return errBadRequest(c, err.Error())
	}
	datum, err := a.datum(c)
	if err != nil {
		return errNotFound(c, err.Error())
	}

	p := orthodrome.OrthodromicExtension(orthodrome.NewPoint2D(v[0], v[1], datum), v[2], v[3])
	pointsGenerated.WithLabelValues("extension").Inc()
	return c.JSON(orthodrome.Feature(p))
}

func (a *api) ellipse(c *fiber.Ctx) error {
	v, err := queryFloats(c, "lat", "lon", "major", "minor", "heading")
	if err != nil {
		return errBadRequest(c, err.Error())
	}
	n, err := a.segments(c)
	if err != nil {
		return errBadRequest(c, err.Error())
	}
	datum, err := a.datum(c)
	if err != nil {
		return errNotFound(c, err.Error())
	}

	center := orthodrome.NewPoint2D(v[0], v[1], datum)
	poly := orthodrome.OrthodromicEllipseSegmentation(center, v[2], v[3], v[4], n)
	pointsGenerated.WithLabelValues("ellipse").Add(float64(poly.Len()))
	return a.respondPolygon(c, "ellipse", poly)
}

func (a *api) arc(c *fiber.Ctx) error {
	v, err := queryFloats(c, "lat", "lon", "radius", "start", "angle")
	if err != nil {
		return errBadRequest(c, err.Error())
	}
	n, err := a.segments(c)
	if err != nil {
		return errBadRequest(c, err.Error())
	}
	datum, err := a.datum(c)
	if err != nil {
		return errNotFound(c, err.Error())
	}

	center := orthodrome.NewPoint2D(v[0], v[1], datum)
	poly := orthodrome.OrthodromicArcSegmentation(center, v[2], v[3], v[4], n)
	pointsGenerated.WithLabelValues("arc").Add(float64(poly.Len()))
	return a.respondPolygon(c, "arc", poly)
}

func (a *api) projectMercator(c *fiber.Ctx) error {
	v, err := queryFloats(c, "lat", "lon")
	if err != nil {
		return errBadRequest(c, err.Error())
	}

	x, y := []float64{v[1]}, []float64{v[0]}
	if err := a.mercator.Transform(x, y); err != nil {
		return errInternal(c, err.Error())
	}
	return c.JSON(fiber.Map{"x": x[0], "y": y[0], "factor": a.mercator.Factor()})
}

// decode reads one binary-encoded value of the kind given by the "kind" query
// parameter from the request body and returns it as GeoJSON.
func (a *api) decode(c *fiber.Ctx) error {
	dec := orthodrome.NewDecoder(bytes.NewReader(c.Body()), a.registry)

	var (
		shape orthodrome.Shape
		err   error
	)
	switch kind := c.Query("kind", orthodrome.KindPolygon); kind {
	case orthodrome.KindPoint2D:
		shape, err = dec.ReadPoint2D()
	case orthodrome.KindPoint3D:
		shape, err = dec.ReadPoint3D()
	case orthodrome.KindPolygon:
		shape, err = dec.ReadPolygon()
	case orthodrome.KindRectangle:
		shape, err = dec.ReadRectangle()
	default:
		return errBadRequest(c, fmt.Sprintf("unknown kind %q", kind))
	}

	switch {
	case errors.Is(err, orthodrome.ErrUnknownDatum):
		return errNotFound(c, err.Error())
	case errors.Is(err, orthodrome.ErrMalformedStream):
		return errBadRequest(c, err.Error())
	case err != nil:
		a.log.Error("decode failed", zap.Error(err))
		return errInternal(c, "decode failed")
	}
	return c.JSON(orthodrome.Feature(shape))
}

// respondPolygon writes poly in the format selected by the "format" query
// parameter: geojson (default), fgb or bin.
func (a *api) respondPolygon(c *fiber.Ctx, name string, poly *orthodrome.Polygon) error {
	switch format := c.Query("format", "geojson"); format {
	case "geojson":
		return c.JSON(orthodrome.Feature(poly))

	case "fgb":
		var buf bytes.Buffer
		opts := &orthodrome.Options{Name: name, IncludeIndex: true}
		if err := orthodrome.Write(&buf, []orthodrome.Shape{poly}, opts); err != nil {
			a.log.Error("flatgeobuf export failed", zap.String("layer", name), zap.Error(err))
			return errInternal(c, "flatgeobuf export failed")
		}
		c.Set(fiber.HeaderContentType, "application/octet-stream")
		return c.Send(buf.Bytes())

	case "bin":
		var buf bytes.Buffer
		if err := orthodrome.NewEncoder(&buf).WritePolygon(poly); err != nil {
			a.log.Error("binary encoding failed", zap.String("layer", name), zap.Error(err))
			return errInternal(c, "binary encoding failed")
		}
		c.Set(fiber.HeaderContentType, "application/octet-stream")
		return c.Send(buf.Bytes())

	default:
		return errBadRequest(c, fmt.Sprintf("unknown format %q", format))
	}
}

func (a *api) datum(c *fiber.Ctx) (*orthodrome.Datum, error) {
	return a.registry.Resolve(c.Query("datum", a.geometry.DefaultDatum))
}

func (a *api) segments(c *fiber.Ctx) (int, error) {
	raw := c.Query("segments")
	if raw == "" {
		return a.geometry.DefaultSegments, nil
	}
	n, err := strconv.Atoi(raw)
	if err != nil || n <= 0 || n > a.geometry.MaxSegments {
		return 0, fmt.Errorf("segments must be an integer in 1-%d, got %q", a.geometry.MaxSegments, raw)
	}
	return n, nil
}

// queryFloats parses the named query parameters as finite floats.
func queryFloats(c *fiber.Ctx, keys ...string) ([]float64, error) {
	values := make([]float64, len(keys))
	for i, key := range keys {
		raw := c.Query(key)
		if raw == "" {
			return nil, fmt.Errorf("missing query parameter %q", key)
		}
		v, err := strconv.ParseFloat(raw, 64)
		if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
			return nil, fmt.Errorf("invalid query parameter %q: %q", key, raw)
		}
		values[i] = v
	}
	return values, nil
}

// requestLogger logs each request with zap.
func requestLogger(log *zap.Logger) fiber.Handler {
	return func(c *fiber.Ctx) error {
		start := time.Now()
		err := c.Next()
		log.Info("request",
			zap.String("method", c.Method()),
			zap.String("path", c.Path()),
			zap.Int("status", c.Response().StatusCode()),
			zap.Duration("latency", time.Since(start)),
			zap.Error(err),
		)
		return err
	}
}

// apiError is a structured error response.
type apiError struct {
	Status  int    `json:"status"`
	Code    string `json:"code"`
	Message string `json:"message"`
}

func newError(c *fiber.Ctx, status int, code, message string) error {
	return c.Status(status).JSON(apiError{Status: status, Code: code, Message: message})
}

func errBadRequest(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusBadRequest, "bad_request", msg)
}

func errNotFound(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusNotFound, "not_found", msg)
}

func errInternal(c *fiber.Ctx, msg string) error {
	return newError(c, fiber.StatusInternalServerError, "internal_error", msg)
}
