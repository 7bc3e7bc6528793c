package api

import "context"

// Get is the typed form of Client.Get.
func Get[T any](ctx context.Context, c *Client, endpoint string, params Params) (T, error) {
	var out T
	err := c.Get(ctx, endpoint, params, &out)
	return out, err
}

// Post is the typed form of Client.Post.
func Post[T any](ctx context.Context, c *Client, endpoint string, body any) (T, error) {
	var out T
	err := c.Post(ctx, endpoint, body, &out)
	return out, err
}

// Put is the typed form of Client.Put.
func Put[T any](ctx context.Context, c *Client, endpoint string, body any) (T, error) {
	var out T
	err := c.Put(ctx, endpoint, body, &out)
	return out, err
}

// Delete is the typed form of Client.Delete.
func Delete[T any](ctx context.Context, c *Client, endpoint string) (T, error) {
	var out T
	err := c.Delete(ctx, endpoint, &out)
	return out, err
}

// Upload is the typed form of Client.Upload.
func Upload[T any](ctx context.Context, c *Client, endpoint string, file *File, fields map[string]any) (T, error) {
	var out T
	err := c.Upload(ctx, endpoint, file, fields, &out)
	return out, err
}
