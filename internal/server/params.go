package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/url"
	"strconv"
	"strings"

	"github.com/labstack/echo/v4"

	"NewsHunter/internal/core"
)

// requestParams 合并查询串、表单与 JSON 请求体中的参数，请求体中的同名参数优先
func requestParams(c echo.Context) (url.Values, error) {
	vals := url.Values{}
	req := c.Request()
	ctype := req.Header.Get(echo.HeaderContentType)

	switch {
	case strings.HasPrefix(ctype, echo.MIMEApplicationJSON):
		var body map[string]any
		if err := json.NewDecoder(req.Body).Decode(&body); err != nil && !errors.Is(err, io.EOF) {
			return nil, &core.ValidationError{Field: "body", Message: "Invalid JSON body"}
		}
		for k, v := range body {
			addJSONValue(vals, k, v)
		}
	case strings.HasPrefix(ctype, echo.MIMEApplicationForm), strings.HasPrefix(ctype, echo.MIMEMultipartForm):
		if _, err := c.FormParams(); err != nil {
			return nil, &core.ValidationError{Field: "body", Message: "Invalid form body"}
		}
		for k, vs := range req.PostForm {
			vals[k] = append(vals[k], vs...)
		}
	}

	for k, vs := range c.QueryParams() {
		if _, ok := vals[k]; !ok {
			vals[k] = vs
		}
	}
	return vals, nil
}

func addJSONValue(vals url.Values, key string, v any) {
	switch t := v.(type) {
	case nil:
	case string:
		vals.Add(key, t)
	case float64:
		vals.Add(key, strconv.FormatFloat(t, 'f', -1, 64))
	case bool:
		vals.Add(key, strconv.FormatBool(t))
	case []any:
		for _, item := range t {
			addJSONValue(vals, key, item)
		}
	}
}

func rawParams(vals url.Values) core.RawParams {
	sources := append([]string{}, vals["source"]...)
	sources = append(sources, vals["source[]"]...)
	return core.RawParams{
		Keyword:  vals.Get("keyword"),
		Date:     vals.Get("date"),
		Category: vals.Get("category"),
		Author:   vals.Get("author"),
		Sources:  sources,
		Page:     vals.Get("page"),
	}
}
