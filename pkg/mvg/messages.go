package mvg

import "context"

// Message is a service message as published by the API, passed through untouched
type Message map[string]any

func (c *Client) Messages(ctx context.Context) ([]Message, error) {
	body, err := c.execute(ctx, EndpointMessage, nil, "")
	if err != nil {
		return nil, err
	}

	messages, err := decodeList[Message](body)
	if err != nil {
		return nil, newParseError("messages data", err)
	}

	return messages, nil
}
