package monitor

import (
	"os"

	"github.com/wyndale/Green-Roots-sub001/config"

	"github.com/gin-gonic/gin"
)

func monitorToken() string {
	token := os.Getenv("MONITOR_TOKEN")
	if token == "" {
		token = "secret-token"
	}
	return token
}

// RegisterLogsRoute serves the raw log file behind a token query parameter.
func RegisterLogsRoute(router *gin.Engine) {
	router.GET("/logs", func(c *gin.Context) {
		if c.Query("token") != monitorToken() {
			c.JSON(401, gin.H{"error": "Unauthorized"})
			return
		}
		logData, err := os.ReadFile(config.LogFilePath())
		if err != nil {
			c.JSON(500, gin.H{"error": "Unable to read log"})
			return
		}
		c.Data(200, "text/plain; charset=utf-8", logData)
	})
}

// RegisterMonitorPage serves a small ops page that polls health and logs.
func RegisterMonitorPage(router *gin.Engine) {
	router.GET("/monitor", func(c *gin.Context) {
		c.Data(200, "text/html; charset=utf-8", []byte(`<!DOCTYPE html>
<html lang="en">
<head>
  <meta charset="UTF-8" />
  <meta name="viewport" content="width=device-width, initial-scale=1.0" />
  <title>Green Roots Monitor</title>
  <style>
    * { margin: 0; padding: 0; box-sizing: border-box; }

    body {
      background: #0f1a12;
      color: #d9e8dc;
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', Roboto, sans-serif;
      min-height: 100vh;
      padding: 20px;
    }

    .container { max-width: 1000px; margin: 0 auto; }

    h1 { font-size: 2rem; color: #7cc98a; margin-bottom: 1.5rem; }

    .status-card, .logs-container {
      background: rgba(255, 255, 255, 0.04);
      border: 1px solid rgba(124, 201, 138, 0.2);
      border-radius: 12px;
      padding: 1.25rem;
      margin-bottom: 1.5rem;
    }

    #status { font-size: 1.1rem; font-weight: 600; }

    .logs-header {
      display: flex;
      justify-content: space-between;
      align-items: center;
      margin-bottom: 1rem;
    }

    #logs {
      background: rgba(0, 0, 0, 0.35);
      padding: 1rem;
      border-radius: 8px;
      max-height: 500px;
      overflow-y: auto;
      white-space: pre-wrap;
      font-family: 'Monaco', 'Consolas', monospace;
      font-size: 0.85rem;
      line-height: 1.5;
      color: #c2d6c6;
    }

    button {
      padding: 0.6rem 1.2rem;
      background: #2e7d43;
      color: #ffffff;
      border: none;
      border-radius: 8px;
      cursor: pointer;
      font-weight: 600;
    }

    button.paused { background: #8a5a2e; }
  </style>
</head>
<body>
  <div class="container">
    <h1>Green Roots Monitor</h1>

    <div class="status-card">
      <div id="status">Status: checking...</div>
    </div>

    <div class="logs-container">
      <div class="logs-header">
        <div>Server Logs</div>
        <button onclick="toggleLive()" id="toggleBtn">Pause Live Logs</button>
      </div>
      <pre id="logs">Loading logs...</pre>
    </div>
  </div>

  <script>
    let liveLogs = true;
    const logsElement = document.getElementById('logs');
    const statusElement = document.getElementById('status');
    const toggleBtn = document.getElementById('toggleBtn');
    const token = new URLSearchParams(window.location.search).get('token') || '';

    function fetchStatus() {
      fetch('/api/v1/health')
        .then(res => res.json())
        .then(data => {
          statusElement.textContent = 'Status: ' + (data.status === 'ok' ? 'online' : 'offline');
        })
        .catch(() => {
          statusElement.textContent = 'Status: offline';
        });
    }

    function fetchLogs() {
      if (!liveLogs) return;
      fetch('/logs?token=' + encodeURIComponent(token))
        .then(res => res.text())
        .then(data => {
          logsElement.textContent = data;
          logsElement.scrollTop = logsElement.scrollHeight;
        });
    }

    function toggleLive() {
      liveLogs = !liveLogs;
      toggleBtn.textContent = liveLogs ? 'Pause Live Logs' : 'Resume Live Logs';
      toggleBtn.classList.toggle('paused', !liveLogs);
    }

    fetchStatus();
    fetchLogs();
    setInterval(fetchStatus, 5000);
    setInterval(fetchLogs, 5000);
  </script>
</body>
</html>`))
	})
}
