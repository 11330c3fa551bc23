package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/JosephKS10/blog-backend/internal/models"
)

// Client talks to the blog API over HTTP. It keeps the bearer token from
// the last successful login.
type Client struct {
	baseURL string
	http    *http.Client
	token   string
}

func NewClient(baseURL string) *Client {
	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) BaseURL() string {
	return c.baseURL
}

func (c *Client) SetToken(token string) {
	c.token = token
}

func (c *Client) Token() string {
	return c.token
}

// APIError carries the server's message or the first validation error.
type APIError struct {
	Status  int
	Message string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%d: %s", e.Status, e.Message)
}

type apiErrorBody struct {
	Message string `json:"message"`
	Errors  []struct {
		Msg  string `json:"msg"`
		Path string `json:"path"`
	} `json:"errors"`
}

func (c *Client) do(method, path string, body interface{}, out interface{}) error {
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return err
		}
		reader = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reader)
	if err != nil {
		return err
	}
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if c.token != "" {
		req.Header.Set("Authorization", "Bearer "+c.token)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return decodeError(resp)
	}

	if out == nil {
		return nil
	}
	if raw, ok := out.(*[]byte); ok {
		*raw, err = io.ReadAll(resp.Body)
		return err
	}
	return json.NewDecoder(resp.Body).Decode(out)
}

func decodeError(resp *http.Response) error {
	var body apiErrorBody
	data, _ := io.ReadAll(resp.Body)
	if err := json.Unmarshal(data, &body); err != nil {
		return &APIError{Status: resp.StatusCode, Message: strings.TrimSpace(string(data))}
	}

	msg := body.Message
	if msg == "" && len(body.Errors) > 0 {
		msg = body.Errors[0].Path + ": " + body.Errors[0].Msg
	}
	return &APIError{Status: resp.StatusCode, Message: msg}
}

type RegisterRequest struct {
	Name     string `json:"name"`
	Email    string `json:"email"`
	Password string `json:"password"`
	Bio      string `json:"bio,omitempty"`
}

func (c *Client) Register(req RegisterRequest) error {
	return c.do(http.MethodPost, "/auth/register", req, nil)
}

// Login stores the returned token and fetches the profile it belongs to.
func (c *Client) Login(email, password string) (*models.User, error) {
	var resp models.LoginResponse
	err := c.do(http.MethodPost, "/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &resp)
	if err != nil {
		return nil, err
	}

	c.token = resp.Token
	user, err := c.CurrentUser()
	if err != nil {
		c.token = ""
		return nil, err
	}
	return user, nil
}

func (c *Client) CurrentUser() (*models.User, error) {
	var user models.User
	if err := c.do(http.MethodGet, "/auth/user", nil, &user); err != nil {
		return nil, err
	}
	return &user, nil
}

func (c *Client) ListPosts() ([]models.Post, error) {
	var posts []models.Post
	err := c.do(http.MethodGet, "/posts", nil, &posts)
	return posts, err
}

func (c *Client) ListMyPosts() ([]models.Post, error) {
	var posts []models.Post
	err := c.do(http.MethodGet, "/posts/blogs/user", nil, &posts)
	return posts, err
}

func (c *Client) GetPost(id string) (*models.Post, error) {
	var post models.Post
	if err := c.do(http.MethodGet, "/posts/"+url.PathEscape(id), nil, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

type CreatePostRequest struct {
	Title            string   `json:"title"`
	Body             string   `json:"body"`
	Category         string   `json:"category"`
	Excerpt          string   `json:"excerpt"`
	ReadTime         string   `json:"readTime"`
	Tags             []string `json:"tags,omitempty"`
	AuthorName       string   `json:"authorName"`
	AuthorImageURL   string   `json:"authorImageURL"`
	FeaturedImageURL string   `json:"featuredImageURL"`
}

func (c *Client) CreatePost(req CreatePostRequest) (*models.Post, error) {
	var post models.Post
	if err := c.do(http.MethodPost, "/posts", req, &post); err != nil {
		return nil, err
	}
	return &post, nil
}

func (c *Client) DeletePost(id string) error {
	return c.do(http.MethodDelete, "/posts/"+url.PathEscape(id), nil, nil)
}

func (c *Client) ListComments(postID string) ([]models.Comment, error) {
	var comments []models.Comment
	err := c.do(http.MethodGet, "/comments/"+url.PathEscape(postID), nil, &comments)
	return comments, err
}

func (c *Client) AddComment(postID, userName, text string) (*models.Comment, error) {
	var comment models.Comment
	err := c.do(http.MethodPost, "/comments/"+url.PathEscape(postID), map[string]string{
		"userName": userName,
		"text":     text,
	}, &comment)
	if err != nil {
		return nil, err
	}
	return &comment, nil
}

func (c *Client) Stats(postID string) (*models.PostStats, error) {
	var stats models.PostStats
	if err := c.do(http.MethodGet, "/posts/"+url.PathEscape(postID)+"/stats", nil, &stats); err != nil {
		return nil, err
	}
	return &stats, nil
}
