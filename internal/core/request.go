package core

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/cenkalti/backoff/v4"

	"NewsHunter/internal/platform"
)

const maxBodyBytes = 8 << 20

var (
	// RetryInitialInterval 第一次重试前的等待时间，测试里会调小
	RetryInitialInterval = 300 * time.Millisecond
	RetryMaxInterval     = 3 * time.Second
)

const userAgent = "NewsHunter/1.0 (+https://github.com/newshunter)"

// GetBody 以 GET 请求 endpoint，返回 2xx 响应体
// 传输错误、429 和 5xx 最多重试 retries 次（GET 是幂等的），其他状态码直接失败
func GetBody(ctx context.Context, client *http.Client, endpoint string, params url.Values, retries int) ([]byte, error) {
	u, err := url.Parse(endpoint)
	if err != nil {
		return nil, fmt.Errorf("invalid endpoint: %w", err)
	}
	if len(params) > 0 {
		merged := u.Query()
		for k, vs := range params {
			for _, v := range vs {
				merged.Add(k, v)
			}
		}
		u.RawQuery = merged.Encode()
	}
	target := u.String()

	if retries < 0 {
		retries = 0
	}
	eb := backoff.NewExponentialBackOff()
	eb.InitialInterval = RetryInitialInterval
	eb.MaxInterval = RetryMaxInterval
	eb.MaxElapsedTime = 0
	policy := backoff.WithContext(backoff.WithMaxRetries(eb, uint64(retries)), ctx)

	var body []byte
	op := func() error {
		req, err := http.NewRequestWithContext(ctx, http.MethodGet, target, nil)
		if err != nil {
			return backoff.Permanent(err)
		}
		req.Header.Set("User-Agent", userAgent)
		req.Header.Set("Accept", "application/json")

		resp, err := client.Do(req)
		if err != nil {
			if ctx.Err() != nil {
				return backoff.Permanent(ctx.Err())
			}
			return err
		}
		defer resp.Body.Close()

		if resp.StatusCode == http.StatusTooManyRequests || resp.StatusCode >= 500 {
			io.Copy(io.Discard, resp.Body)
			return &platform.StatusError{Code: resp.StatusCode}
		}
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return backoff.Permanent(&platform.StatusError{Code: resp.StatusCode})
		}

		b, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
		if err != nil {
			return err
		}
		body = b
		return nil
	}

	if err := backoff.Retry(op, policy); err != nil {
		return nil, err
	}
	return body, nil
}

// RedactURL 用于日志输出，隐藏凭证参数
func RedactURL(endpoint string, params url.Values, secretKeys ...string) string {
	safe := url.Values{}
	for k, vs := range params {
		safe[k] = vs
	}
	for _, k := range secretKeys {
		if safe.Has(k) {
			safe.Set(k, "***")
		}
	}
	if len(safe) == 0 {
		return endpoint
	}
	return endpoint + "?" + safe.Encode()
}
