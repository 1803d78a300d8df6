package core

import (
	"crypto/tls"
	"net/http"
	"net/url"
	"time"
)

// NewHTTPClient 创建一个通用的 HTTP 客户端，每个平台适配器持有自己的一份（连接池归适配器所有）
// - timeout: 单次请求超时，<=0 时使用 30s
// - proxy: 代理地址，例如 "http://127.0.0.1:7890"，留空则不设置代理
func NewHTTPClient(timeout time.Duration, proxy string) *http.Client {
	if timeout <= 0 {
		timeout = 30 * time.Second
	}

	tlsConfig := &tls.Config{
		InsecureSkipVerify: false,
		MinVersion:         tls.VersionTLS12,
	}

	transport := &http.Transport{
		TLSClientConfig:       tlsConfig,
		TLSHandshakeTimeout:   10 * time.Second,
		ResponseHeaderTimeout: timeout,
		ExpectContinueTimeout: 1 * time.Second,
		MaxIdleConns:          32,
		MaxIdleConnsPerHost:   8,
		IdleConnTimeout:       90 * time.Second,
	}

	if proxy != "" {
		if proxyURL, err := url.Parse(proxy); err == nil {
			transport.Proxy = http.ProxyURL(proxyURL)
		}
	}

	return &http.Client{
		Timeout:   timeout,
		Transport: transport,
	}
}
