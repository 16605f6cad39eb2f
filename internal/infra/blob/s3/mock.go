package s3

import (
	"bytes"
	"context"
	"crypto/md5" //nolint:gosec // etag only
	"encoding/hex"
	"encoding/xml"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"
	"time"

	aws "github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/config"
	"github.com/aws/aws-sdk-go-v2/credentials"
	"github.com/aws/aws-sdk-go-v2/service/s3"
)

const mockBucket = "mock-bucket"

// NewMockForTests returns a Store whose HTTP client talks to an in-process
// fake bucket. The fake understands HeadObject, GetObject, PutObject (with
// If-None-Match: *), DeleteObject and ListObjectsV2.
func NewMockForTests() *Store {
	return newMockStore(newFakeBucket(), "")
}

func newMockStore(rt http.RoundTripper, prefix string) *Store {
	cfg, _ := config.LoadDefaultConfig(context.Background(),
		config.WithRegion("us-east-1"),
		config.WithCredentialsProvider(credentials.NewStaticCredentialsProvider("AKIA", "SECRET", "")),
	)
	client := s3.NewFromConfig(cfg, func(o *s3.Options) {
		o.HTTPClient = &http.Client{Transport: rt}
		o.UsePathStyle = true
		o.BaseEndpoint = aws.String("https://mock.s3.local")
	})
	return &Store{client: client, bucket: mockBucket, prefix: prefix}
}

type fakeObject struct {
	body        []byte
	contentType string
	metadata    map[string]string
	modified    time.Time
}

func (o fakeObject) header() http.Header {
	h := http.Header{
		"Content-Length": {strconv.Itoa(len(o.body))},
		"Content-Type":   {o.contentType},
		"Etag":           {`"` + md5Hex(o.body) + `"`},
		"Last-Modified":  {o.modified.Format(http.TimeFormat)},
	}
	for k, v := range o.metadata {
		h.Set("X-Amz-Meta-"+k, v)
	}
	return h
}

// fakeBucket is an http.RoundTripper holding objects by path-style key.
type fakeBucket struct {
	mu      sync.Mutex
	objects map[string]fakeObject
}

func newFakeBucket() *fakeBucket {
	return &fakeBucket{objects: make(map[string]fakeObject)}
}

func (b *fakeBucket) RoundTrip(req *http.Request) (*http.Response, error) {
	b.mu.Lock()
	defer b.mu.Unlock()

	// Path-style: /<bucket>/<key>
	_, key, _ := strings.Cut(strings.TrimPrefix(req.URL.Path, "/"), "/")
	query := req.URL.Query()

	switch {
	case req.Method == http.MethodGet && query.Get("list-type") == "2":
		return b.list(query.Get("prefix")), nil
	case req.Method == http.MethodHead:
		obj, ok := b.objects[key]
		if !ok {
			return reply(http.StatusNotFound, nil, nil), nil
		}
		return reply(http.StatusOK, obj.header(), nil), nil
	case req.Method == http.MethodGet:
		obj, ok := b.objects[key]
		if !ok {
			return reply(http.StatusNotFound, nil, nil), nil
		}
		return reply(http.StatusOK, obj.header(), obj.body), nil
	case req.Method == http.MethodPut:
		return b.put(key, req), nil
	case req.Method == http.MethodDelete:
		delete(b.objects, key)
		return reply(http.StatusNoContent, nil, nil), nil
	}
	return reply(http.StatusNotImplemented, nil, nil), nil
}

func (b *fakeBucket) put(key string, req *http.Request) *http.Response {
	if _, exists := b.objects[key]; exists && req.Header.Get("If-None-Match") == "*" {
		return reply(http.StatusPreconditionFailed, nil, nil)
	}
	body, _ := io.ReadAll(req.Body)
	if decoded, ok := decodeChunked(body); ok {
		body = decoded
	}
	metadata := make(map[string]string)
	for name, values := range req.Header {
		lower := strings.ToLower(name)
		if strings.HasPrefix(lower, "x-amz-meta-") && len(values) > 0 {
			metadata[strings.TrimPrefix(lower, "x-amz-meta-")] = values[0]
		}
	}
	b.objects[key] = fakeObject{
		body:        body,
		contentType: req.Header.Get("Content-Type"),
		metadata:    metadata,
		modified:    time.Now().UTC().Truncate(time.Second),
	}
	return reply(http.StatusOK, http.Header{"Etag": {`"` + md5Hex(body) + `"`}}, nil)
}

type listResult struct {
	XMLName     xml.Name       `xml:"ListBucketResult"`
	IsTruncated bool           `xml:"IsTruncated"`
	Contents    []listContents `xml:"Contents"`
}

type listContents struct {
	Key          string `xml:"Key"`
	Size         int    `xml:"Size"`
	LastModified string `xml:"LastModified"`
}

func (b *fakeBucket) list(prefix string) *http.Response {
	var result listResult
	for key, obj := range b.objects {
		if strings.HasPrefix(key, prefix) {
			result.Contents = append(result.Contents, listContents{
				Key:          key,
				Size:         len(obj.body),
				LastModified: obj.modified.Format(time.RFC3339),
			})
		}
	}
	sort.Slice(result.Contents, func(i, j int) bool { return result.Contents[i].Key < result.Contents[j].Key })
	body, _ := xml.Marshal(result)
	return reply(http.StatusOK, http.Header{"Content-Type": {"application/xml"}}, append([]byte(xml.Header), body...))
}

func reply(status int, header http.Header, body []byte) *http.Response {
	if header == nil {
		header = http.Header{}
	}
	return &http.Response{StatusCode: status, Header: header, Body: io.NopCloser(bytes.NewReader(body))}
}

func md5Hex(body []byte) string {
	sum := md5.Sum(body) //nolint:gosec // etag only
	return hex.EncodeToString(sum[:])
}

// decodeChunked unwraps a single-chunk aws-chunked payload:
// <hex size>\r\n<body>\r\n0\r\n[trailers]
func decodeChunked(b []byte) ([]byte, bool) {
	parts := strings.Split(string(b), "\r\n")
	if len(parts) < 3 || parts[2] != "0" {
		return nil, false
	}
	size, err := strconv.ParseInt(strings.SplitN(parts[0], ";", 2)[0], 16, 64)
	if err != nil || int64(len(parts[1])) != size {
		return nil, false
	}
	return []byte(parts[1]), true
}
