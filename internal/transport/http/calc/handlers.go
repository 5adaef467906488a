package calchttp

import (
	"bytes"
	"errors"
	"html/template"
	"io"
	"net/http"
	"strings"

	"bmicalc/internal/bmi"
	"bmicalc/internal/history"
	"bmicalc/internal/logger"
	"bmicalc/internal/render"
	"bmicalc/internal/session"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/csrf"
)

const maxBodyBytes = 1 << 16

var templateFuncs = template.FuncMap{
	"formatBMI": render.FormatBMI,
}

type handlers struct {
	chart       render.TrendOptions
	snapshotter Snapshotter
}

type resultView struct {
	Display  string
	Headline string
	Color    string
	Advice   template.HTML
}

type formView struct {
	Age      int
	Gender   bmi.Gender
	WeightKg float64
	HeightM  float64
}

type pageData struct {
	Form       formView
	Genders    []bmi.Gender
	Latest     *resultView
	Reference  []render.ReferenceRow
	History    []history.Row
	HistoryLen int
	Error      string
	CSRFField  template.HTML
	Disclaimer template.HTML
	Snapshot   bool
}

func (h *handlers) index(c *gin.Context) {
	h.renderPage(c, http.StatusOK, "")
}

// calculate 处理表单提交：成功后重定向回首页，失败时展示原有状态与错误。
func (h *handlers) calculate(c *gin.Context) {
	sess := currentSession(c)
	m, err := parseForm(c.PostForm)
	if err != nil {
		h.renderPage(c, http.StatusBadRequest, err.Error())
		return
	}
	res, err := sess.Submit(m)
	if err != nil {
		var invalid *bmi.InvalidInputError
		if errors.As(err, &invalid) {
			h.renderPage(c, http.StatusUnprocessableEntity, invalid.Error())
			return
		}
		logger.Errorf("calculate failed session=%s: %v", sess.ID(), err)
		h.renderPage(c, http.StatusInternalServerError, "calculation failed")
		return
	}
	logger.Debugf("session=%s bmi=%s category=%s", sess.ID(), res.Display(), res.Category)
	c.Redirect(http.StatusSeeOther, "/")
}

func (h *handlers) renderPage(c *gin.Context, status int, errMsg string) {
	sess := currentSession(c)
	def := bmi.DefaultMeasurement()
	data := pageData{
		Form:       formView{Age: def.Age, Gender: def.Gender, WeightKg: def.WeightKg, HeightM: def.HeightM},
		Genders:    bmi.Genders(),
		Reference:  render.ReferenceRows(),
		History:    sess.Rows(),
		Error:      errMsg,
		CSRFField:  csrf.TemplateField(c.Request),
		Disclaimer: render.Markdown(render.Disclaimer),
		Snapshot:   h.snapshotter != nil,
	}
	data.HistoryLen = len(data.History)
	if latest, ok := sess.Latest(); ok {
		data.Latest = &resultView{
			Display:  latest.Display(),
			Headline: latest.Headline(),
			Color:    latest.Color,
			Advice:   render.AdviceHTML(latest.Tips),
		}
	}
	c.HTML(status, "index.html", data)
}

func (h *handlers) chartHTML(sess *session.Session) ([]byte, error) {
	return render.TrendHTML(sess.History(), h.chart)
}

func (h *handlers) chartPage(c *gin.Context) {
	html, err := h.chartHTML(currentSession(c))
	if err != nil {
		if errors.Is(err, render.ErrEmptyHistory) {
			c.String(http.StatusNotFound, "no calculations yet")
			return
		}
		logger.Errorf("render trend chart failed: %v", err)
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", html)
}

func (h *handlers) chartPNG(c *gin.Context) {
	if h.snapshotter == nil {
		c.String(http.StatusNotFound, "chart snapshots are disabled")
		return
	}
	html, err := h.chartHTML(currentSession(c))
	if err != nil {
		if errors.Is(err, render.ErrEmptyHistory) {
			c.String(http.StatusNotFound, "no calculations yet")
			return
		}
		logger.Errorf("render trend chart failed: %v", err)
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}
	png, err := h.snapshotter.Snapshot(c.Request.Context(), html)
	if err != nil {
		logger.Errorf("chart snapshot failed: %v", err)
		c.String(http.StatusInternalServerError, "internal server error")
		return
	}
	c.Data(http.StatusOK, "image/png", png)
}

type calculateResponse struct {
	Result      bmi.Result `json:"result"`
	Display     string     `json:"display"`
	Headline    string     `json:"headline"`
	Calculation int        `json:"calculation"`
}

func (h *handlers) apiCalculate(c *gin.Context) {
	sess := currentSession(c)
	raw, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "read request body failed"})
		return
	}
	m, err := parseCalculatePayload(raw)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	res, err := sess.Submit(m)
	if err != nil {
		var invalid *bmi.InvalidInputError
		if errors.As(err, &invalid) {
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": invalid.Error(), "field": invalid.Field})
			return
		}
		logger.Errorf("api calculate failed session=%s: %v", sess.ID(), err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.JSON(http.StatusOK, calculateResponse{
		Result:      res,
		Display:     res.Display(),
		Headline:    res.Headline(),
		Calculation: sess.Len(),
	})
}

func (h *handlers) apiHistory(c *gin.Context) {
	if strings.EqualFold(strings.TrimSpace(c.Query("format")), "text") {
		c.String(http.StatusOK, render.RenderHistoryTable(currentSession(c).Rows()))
		return
	}
	format, err := history.ParseFormat(c.Query("format"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	var buf bytes.Buffer
	if err := history.Export(&buf, currentSession(c).Rows(), format); err != nil {
		logger.Errorf("export history failed: %v", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "internal server error"})
		return
	}
	c.Data(http.StatusOK, format.ContentType(), buf.Bytes())
}

func (h *handlers) apiReference(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"categories": render.ReferenceRows()})
}
