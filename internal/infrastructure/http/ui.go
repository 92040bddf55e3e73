package http

import "net/http"

// handleUI serves the embedded single-page chat front-end. It talks to the
// same API a remote client would use.
func (s *Server) handleUI(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Write([]byte(uiPage))
}

const uiPage = `<!DOCTYPE html>
<html lang="nl">
<head>
    <meta charset="UTF-8">
    <meta name="viewport" content="width=device-width, initial-scale=1.0">
    <title>RealEstateGPT</title>
    <style>
        body { font-family: sans-serif; max-width: 900px; margin: 2rem auto; padding: 0 1rem; }
        #messages { border: 1px solid #ccc; border-radius: 6px; min-height: 240px; max-height: 420px; overflow-y: auto; padding: 1rem; margin-bottom: 1rem; }
        .message { margin: .5rem 0; padding: .5rem .75rem; border-radius: 6px; }
        .user { background: #e8f0fe; text-align: right; }
        .assistant { background: #f1f3f4; }
        .error { color: #b00020; }
        form { display: flex; gap: .5rem; margin-bottom: 2rem; }
        input[type=text] { flex: 1; padding: .5rem; }
        table { border-collapse: collapse; width: 100%; }
        th, td { border: 1px solid #ddd; padding: .4rem .6rem; text-align: left; }
        th { background: #f1f3f4; }
    </style>
</head>
<body>
    <h1>🏘️ RealEstateGPT</h1>
    <p>Chat met je vastgoedportefeuille.</p>

    <div id="messages"></div>
    <form id="chat-form">
        <input type="text" id="question" placeholder="Stel een vraag..." autocomplete="off" required>
        <button type="submit">Verstuur</button>
    </form>

    <h2>Portfolio</h2>
    <table id="portfolio">
        <thead><tr><th>ID</th><th>Adres</th><th>Type</th><th>Waarde</th><th>Leegstand</th><th>Inkomsten</th><th>Einde huur</th></tr></thead>
        <tbody></tbody>
    </table>

    <script>
        let sessionId = "";
        const messages = document.getElementById("messages");

        function addMessage(cls, text) {
            const div = document.createElement("div");
            div.className = "message " + cls;
            div.textContent = text;
            messages.appendChild(div);
            messages.scrollTop = messages.scrollHeight;
        }

        document.getElementById("chat-form").addEventListener("submit", async (e) => {
            e.preventDefault();
            const input = document.getElementById("question");
            const question = input.value.trim();
            if (!question) return;
            input.value = "";
            addMessage("user", question);

            try {
                const headers = { "Content-Type": "application/json" };
                if (sessionId) headers["X-Session-ID"] = sessionId;
                const resp = await fetch("/chat", {
                    method: "POST",
                    headers: headers,
                    body: JSON.stringify({ question: question })
                });
                sessionId = resp.headers.get("X-Session-ID") || sessionId;
                const data = await resp.json();
                if (resp.ok) {
                    addMessage("assistant", data.answer);
                } else {
                    addMessage("assistant error", "Fout: " + data.error);
                }
            } catch (err) {
                addMessage("assistant error", "Verbindingsfout");
            }
        });

        fetch("/portfolio").then(r => r.json()).then(rows => {
            const tbody = document.querySelector("#portfolio tbody");
            for (const row of rows) {
                const tr = document.createElement("tr");
                for (const v of [row.id, row.address, row.type, row.value,
                                 Math.round(row.vacancy_rate * 100) + "%",
                                 row.annual_income, row.end_lease]) {
                    const td = document.createElement("td");
                    td.textContent = v;
                    tr.appendChild(td);
                }
                tbody.appendChild(tr);
            }
        });
    </script>
</body>
</html>`
