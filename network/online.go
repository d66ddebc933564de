package network

import (
	"context"
	"net/http"
	"time"
)

// probeTimeout bounds how long Online waits for an answer.
const probeTimeout = 3 * time.Second

// Online reports whether url can be reached. Any HTTP answer counts,
// only transport failures mean offline.
func Online(ctx context.Context, url string) bool {
	if url == "" {
		return false
	}

	ctx, cancel := context.WithTimeout(ctx, probeTimeout)
	defer cancel()

	req, err := NewRequest(ctx, http.MethodHead, url, nil)
	if err != nil {
		return false
	}

	resp, err := Client.Do(req)
	if err != nil {
		return false
	}
	_ = resp.Body.Close()
	return true
}
