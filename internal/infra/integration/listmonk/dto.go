package listmonk

type subscriberRequest struct {
	Email   string            `json:"email"`
	Name    string            `json:"name"`
	Status  string            `json:"status"`
	Lists   []int             `json:"lists"`
	Attribs map[string]string `json:"attribs,omitempty"`
}

type subscriberResponse struct {
	Data struct {
		ID int `json:"id"`
	} `json:"data"`
}
