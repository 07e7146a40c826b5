package mcp

import (
	"github.com/modelcontextprotocol/go-sdk/mcp"

	"github.com/krillinai/klicbridge/internal/client"
	"github.com/krillinai/klicbridge/internal/connector"
)

// Tool names exposed by the bridge.
const (
	ToolGetBaseURL             = "get_base_url"
	ToolSetBaseURL             = "set_base_url"
	ToolGetSystemConfig        = "get_system_config"
	ToolUpdateSystemConfig     = "update_system_config"
	ToolUpdateLLMConfig        = "update_llm_config"
	ToolUploadFile             = "upload_file"
	ToolStartSubtitleTask      = "start_subtitle_task"
	ToolGetSubtitleTaskDetails = "get_subtitle_task_details"
	ToolFetchFileAsText        = "fetch_file_as_text"
)

const (
	serverName    = "KlicStudioConnector"
	serverVersion = "1.0.0"
)

const serverInstructions = `Bridge to a KlicStudio media processing service for subtitle generation,
translation, speech synthesis and subtitle embedding.

Typical workflow: upload_file places a local media file on the service;
start_subtitle_task begins processing and returns a task_id; poll
get_subtitle_task_details until the state is COMPLETED or FAILED; download
URLs in the result can be read with fetch_file_as_text for subtitle files.
get_base_url/set_base_url inspect and retarget the service endpoint, and the
config tools read or change the service's own settings.`

// NewMCPServer creates a fully configured MCP server with every KlicStudio
// tool registered.
func NewMCPServer(state *connector.State, c client.Client) *mcp.Server {
	handlers := NewServer(state, c)

	server := mcp.NewServer(&mcp.Implementation{
		Name:    serverName,
		Version: serverVersion,
	}, &mcp.ServerOptions{
		Instructions: serverInstructions,
	})

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolGetBaseURL,
		Description: "Get the base URL of the KlicStudio service the bridge currently talks to.",
	}, handlers.getBaseURL)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolSetBaseURL,
		Description: "Point the bridge at a different KlicStudio service. Takes effect on the next call.",
	}, handlers.setBaseURL)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolGetSystemConfig,
		Description: "Read the KlicStudio system configuration (app, server, llm, transcribe and tts sections).",
	}, handlers.getSystemConfig)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolUpdateSystemConfig,
		Description: "Submit a full or partial KlicStudio configuration document; the service merges and validates it.",
	}, handlers.updateSystemConfig)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolUpdateLLMConfig,
		Description: "Change only the LLM settings (base URL, API key, model) without touching other configuration.",
	}, handlers.updateLLMConfig)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolUploadFile,
		Description: "Upload a local media file to the KlicStudio service and get back its service-side file path.",
	}, handlers.uploadFile)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolStartSubtitleTask,
		Description: "Start a subtitle processing task: transcription, optional translation, speech synthesis and subtitle embedding.",
	}, handlers.startSubtitleTask)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolGetSubtitleTaskDetails,
		Description: "Poll a subtitle task: lifecycle state, progress percentage, failure reason and artifact download URLs.",
	}, handlers.getSubtitleTaskDetails)

	mcp.AddTool(server, &mcp.Tool{
		Name:        ToolFetchFileAsText,
		Description: "Download a task artifact such as a subtitle file and return its content decoded as UTF-8 text.",
	}, handlers.fetchFileAsText)

	return server
}
