package server

import "encoding/xml"

// twimlResponse is the Twilio messaging response envelope.
type twimlResponse struct {
	XMLName  xml.Name       `xml:"Response"`
	Messages []twimlMessage `xml:"Message"`
}

type twimlMessage struct {
	Body  string `xml:"Body,omitempty"`
	Media string `xml:"Media,omitempty"`
}

func textResponse(chunks []string) twimlResponse {
	var resp twimlResponse
	for _, chunk := range chunks {
		resp.Messages = append(resp.Messages, twimlMessage{Body: chunk})
	}
	return resp
}

func mediaResponse(url string) twimlResponse {
	return twimlResponse{Messages: []twimlMessage{{Media: url}}}
}

func renderTwiML(resp twimlResponse) (string, error) {
	out, err := xml.Marshal(resp)
	if err != nil {
		return "", err
	}
	return xml.Header + string(out), nil
}
