package asset

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strings"
)

// The Resource type wraps a streamable local file or remote resource such as
// a serialized material description, a wavefront model or a texture bitmap.
type Resource struct {
	io.ReadCloser
	url *url.URL
}

// Returns the path to this resource.
func (r *Resource) Path() string {
	if r.IsRemote() {
		return r.url.String()
	}
	return r.url.Path
}

// Returns the lowercase file extension of the resource including the dot.
func (r *Resource) Ext() string {
	return strings.ToLower(filepath.Ext(r.url.Path))
}

// Returns true if the Resource is streamed over http/https.
func (r *Resource) IsRemote() bool {
	return r.url.Scheme != ""
}

// Decode the resource contents as JSON into v. Unknown fields are rejected
// so that misspelled keys surface as one upfront error.
func (r *Resource) DecodeJSON(v interface{}) error {
	dec := json.NewDecoder(r)
	dec.DisallowUnknownFields()
	if err := dec.Decode(v); err != nil {
		return fmt.Errorf("resource: could not decode %s: %v", r.Path(), err)
	}
	return nil
}

// Parse a path into a URL. Windows paths use backslashes and drive letters;
// both are normalized so that drive letters are not mistaken for schemes.
func parsePath(pathToResource string) (*url.URL, error) {
	normalized := strings.Replace(pathToResource, `\`, `/`, -1)
	if len(normalized) >= 2 && normalized[1] == ':' && isDriveLetter(normalized[0]) {
		return &url.URL{Path: normalized}, nil
	}
	return url.Parse(normalized)
}

func isDriveLetter(c byte) bool {
	return (c >= 'a' && c <= 'z') || (c >= 'A' && c <= 'Z')
}

// Resolve a path against a parent resource without opening it. Absolute
// paths and URLs are returned unchanged.
func ResolvePath(pathToResource string, relTo *Resource) (string, error) {
	u, err := resolve(pathToResource, relTo)
	if err != nil {
		return "", err
	}
	if u.Scheme != "" {
		return u.String(), nil
	}
	return u.Path, nil
}

func resolve(pathToResource string, relTo *Resource) (*url.URL, error) {
	u, err := parsePath(pathToResource)
	if err != nil {
		return nil, err
	}

	// If this is a relative path, clone parent url and adjust its path
	if u.Scheme == "" && relTo != nil && !filepath.IsAbs(u.Path) && !isWindowsAbs(u.Path) {
		path := u.Path
		parent := *relTo.url
		prefix := parent.Path
		if parent.Scheme == "" {
			prefix, err = filepath.Abs(parent.Path)
			if err != nil {
				return nil, fmt.Errorf("resource: could not detect abs path for %s; %s", parent.Path, err.Error())
			}
		}
		parent.Path = filepath.ToSlash(filepath.Dir(prefix)) + "/" + path
		u = &parent
	}
	return u, nil
}

func isWindowsAbs(path string) bool {
	return len(path) >= 3 && path[1] == ':' && path[2] == '/' && isDriveLetter(path[0])
}

// Create a new Resource data stream. If relTo is specified and pathToResource
// is a relative path, then the path to the new Resource will be generated
// by concatenating the base path of relTo and pathToResource.
//
// This function can handle http/https URLs by delegating to the net/http package.
// The caller must make sure to close the returned Resource.
func NewResource(pathToResource string, relTo *Resource) (*Resource, error) {
	u, err := resolve(pathToResource, relTo)
	if err != nil {
		return nil, err
	}

	var reader io.ReadCloser
	switch u.Scheme {
	case "":
		reader, err = os.Open(filepath.Clean(filepath.FromSlash(u.Path)))
		if err != nil {
			return nil, err
		}
	case "http", "https":
		resp, err := http.Get(u.String())
		if err != nil {
			return nil, fmt.Errorf("resource: could not fetch '%s': %s", u.String(), err)
		}
		if resp.StatusCode >= 400 {
			resp.Body.Close()
			return nil, fmt.Errorf("resource: could not fetch '%s': status %d", u.String(), resp.StatusCode)
		}
		reader = resp.Body
	default:
		return nil, fmt.Errorf("resource: unsupported scheme '%s'", u.Scheme)
	}

	return &Resource{
		ReadCloser: reader,
		url:        u,
	}, nil
}

// Create a resource from a reader.
func NewResourceFromStream(name string, source io.Reader) *Resource {
	u, err := parsePath(name)
	if err != nil {
		u = &url.URL{Path: name}
	}
	return &Resource{
		ReadCloser: io.NopCloser(source),
		url:        u,
	}
}
