/*
Package client is a typed HTTP client for the gateway's file API.

Client implements types.FileAccessor, so code written against the accessor
interface works unchanged on top of a remote gateway:

	c := client.New("http://localhost:3000", client.Options{})
	res, err := c.ListDirectory(ctx, "docs")
	switch {
	case err != nil:
		// transport failure or non-200 answer (*StatusError)
	case res.IsSoftError():
		fmt.Println(res.Message())
	default:
		for _, e := range res.Value() { ... }
	}

errors.Is(err, filesystem.ErrAccessDenied) holds for traversal rejections.
*/
package client
