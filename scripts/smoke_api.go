package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"

	"github.com/fatih/color"
)

const baseURL = "http://localhost:3000/api"

// Pretty print JSON helper
func prettyPrint(v interface{}) {
	b, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		fmt.Printf("%v\n", v)
		return
	}
	fmt.Println(string(b))
}

// Request helper
func sendRequest(method, url string, body interface{}) (*http.Response, []byte, error) {
	var bodyReader io.Reader
	if body != nil {
		jsonBody, _ := json.Marshal(body)
		bodyReader = bytes.NewBuffer(jsonBody)
	}

	req, err := http.NewRequest(method, baseURL+url, bodyReader)
	if err != nil {
		return nil, nil, err
	}
	req.Header.Set("Content-Type", "application/json")

	client := &http.Client{} // No timeout, generation can be slow
	resp, err := client.Do(req)
	if err != nil {
		return nil, nil, err
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	return resp, respBody, err
}

func main() {
	color.Cyan("🚀 Starting Classroom API Smoke Test\n")

	// 1. Create a space with a default persona
	color.Yellow("\n[TEACHER] 1. Create Space")
	spaceReq := map[string]interface{}{
		"title":       "Smoke Test Period",
		"description": "Created by the smoke script",
		"teacher_id":  "smoke-teacher",
	}
	resp, body, err := sendRequest("POST", "/space/v1", spaceReq)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var createResp map[string]interface{}
	json.Unmarshal(body, &createResp)
	prettyPrint(createResp)

	var spaceID string
	if data, ok := createResp["data"].(map[string]interface{}); ok {
		if id, ok := data["id"].(string); ok {
			spaceID = id
		}
	}
	if spaceID == "" {
		color.Red("No space id returned, aborting")
		os.Exit(1)
	}

	// 2. Student sends a chat turn
	color.Yellow("\n[STUDENT] 2. Chat Turn")
	turnReq := map[string]interface{}{
		"space_id": spaceID,
		"user_id":  "smoke-student",
		"message":  "I think the green light stands for hope.",
	}
	resp, body, err = sendRequest("POST", "/chat/v1/turn", turnReq)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var turnResp map[string]interface{}
	json.Unmarshal(body, &turnResp)
	fmt.Printf("Reply: %s\n", turnResp["response"])

	// 3. Direct analyst call on the same message
	color.Yellow("\n[ANALYST] 3. Tag Interaction")
	tagReq := map[string]interface{}{
		"last_interaction": map[string]interface{}{
			"role":    "user",
			"content": "I think the green light stands for hope.",
		},
	}
	resp, body, err = sendRequest("POST", "/analyst/v1/tags", tagReq)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var tagResp map[string]interface{}
	json.Unmarshal(body, &tagResp)
	prettyPrint(tagResp)

	// 4. Replay the interaction log
	color.Yellow("\n[TEACHER] 4. List Interactions")
	resp, body, err = sendRequest("GET", "/interaction/v1?space_id="+spaceID+"&user_id=smoke-student", nil)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var listResp map[string]interface{}
	json.Unmarshal(body, &listResp)
	if data, ok := listResp["data"].([]interface{}); ok {
		fmt.Printf("Interactions: %d\n", len(data))
	} else {
		prettyPrint(listResp)
	}

	// 5. Pulse report over the space
	color.Yellow("\n[TEACHER] 5. Synthesis Report")
	reportReq := map[string]interface{}{
		"space_id": spaceID,
	}
	resp, body, err = sendRequest("POST", "/synthesis/v1/report", reportReq)
	if err != nil {
		color.Red("Failed: %v", err)
		os.Exit(1)
	}
	color.Green("Status: %s", resp.Status)
	var reportResp map[string]interface{}
	json.Unmarshal(body, &reportResp)
	prettyPrint(reportResp)

	color.Cyan("\n✅ Smoke Sequence Complete")
}
