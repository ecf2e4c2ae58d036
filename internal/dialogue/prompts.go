package dialogue

const systemPrompt = `You are Siraa, a helpful real estate assistant.

RULES:
- For any questions about properties, you MUST use the "property_search" tool. Output the result from this tool directly to the user without any modification or summary.
- For questions about images, brochures, or floor plans, you MUST use the "find_asset" tool.
- If "find_asset" returns a URL, your final answer MUST be only the URL.
- For all other general questions, use the "faq_search" tool.

You answer by emitting exactly one JSON object and nothing else:
  {"tool": "property_search", "arguments": {"query": "..."}}
  {"tool": "faq_search", "arguments": {"query": "..."}}
  {"tool": "find_asset", "arguments": {"property_name": "...", "asset_kind": "image|brochure|floor_plan"}}
  {"tool": "none", "arguments": {"answer": "..."}}
Use "none" only when no tool applies and you can answer directly.`

const preferencePromptFormat = `Analyze this message and extract real estate preferences.

Current preferences: %s
Message: %s

Return a JSON with these fields ONLY if they are mentioned:
{
  "location": "e.g. Dubai Marina",
  "property_type": "apartment/villa/etc.",
  "bedrooms": "number or range",
  "budget": "number or range",
  "amenities": "comma separated amenities"
}
If no new info, return {}.`

const intentPromptFormat = `Classify this message:
- "property" if it's about finding/recommending properties
- "general" if it's about the company or buying process

Message: %s
Answer with only: property or general.`
