package analysis

// SchemaVersion is a named, versioned output-schema definition for the
// generative analysis. The template is embedded verbatim into the prompt
// as instructional text; it is not machine-validated at generation time.
//
// Two variants are in production use and have diverged over time; they
// are kept as distinct named versions rather than merged, and each
// declares the keys that were dropped from earlier revisions so responses
// from models trained on old prompts can be cleaned up.
type SchemaVersion struct {
	// Name identifies the schema version (e.g. "core-v1").
	Name string
	// Template is the literal schema text embedded into the prompt.
	Template string
	// DeprecatedKeys are stripped from parsed results if present.
	DeprecatedKeys []string
	// Goals are the analysis instructions rendered above the template.
	Goals []string
}

// SentimentAnalysisKey is the narrative field every schema version
// requires; a generic default is injected when the model omits it.
const SentimentAnalysisKey = "sentiment_analysis"

// DefaultSentimentAnalysis is injected when the model response lacks the
// narrative sentiment-analysis field.
const DefaultSentimentAnalysis = "Critical-thinking analysis on the transcription covering tone, intent, evidence, and context."

// SchemaCore is the standard analysis schema: sentiment, satisfaction,
// summary, intent, issues, action items, agent identification, coaching
// opportunities, and follow-up drafting.
var SchemaCore = SchemaVersion{
	Name:           "core-v1",
	DeprecatedKeys: []string{"per_turn", "compliance_flags", "escalation_risk", "escalation_reason"},
	Goals: []string{
		"Detect overall sentiment/emotion and confidence.",
		"Assess customer satisfaction and confidence.",
		"Provide a concise call summary.",
		"Identify customer intent and key issues.",
		"Extract concrete action items with owner and due date if present.",
		"THINK about which speaker is the agent; set 'agent_speaker_label' to the best guess and a confidence score.",
		"Provide 'agent_improvement_opportunities' that focus on what the agent could do better next time, with evidence quotes and impact.",
		"Provide 'post_call_recommendations' that specify what the agent should do after the call from this point on (follow-up, ticketing, documentation, proactive checks), and include a short 'follow_up_message_draft'.",
		"Provide a 'sentiment_analysis' section with critical-thinking insight on the transcription.",
	},
	Template: `Return ONLY a JSON object with this exact structure and keys (no markdown, no extra text). If a field is not applicable, use an empty string for strings, [] for arrays, and null where allowed:

{
  "emotion_overall": "very_negative | negative | neutral | positive | very_positive",
  "emotion_confidence": 0.0,
  "satisfaction": "very_unsatisfied | unsatisfied | neutral | satisfied | very_satisfied",
  "satisfaction_confidence": 0.0,
  "summary": "2-4 concise sentences summarizing the conversation",
  "customer_intent": "primary customer intent in one sentence",
  "issues": ["list of key issues raised by the customer"],
  "action_items": [
    {
      "owner": "agent | customer | other",
      "item": "what needs to be done",
      "due": "YYYY-MM-DD or null"
    }
  ],
  "agent_speaker_label": "Speaker 1 | Speaker 2 | Speaker 3 | unknown",
  "agent_identification_confidence": 0.0,
  "agent_improvement_opportunities": [
    {
      "category": "empathy | discovery | clarity | solution_quality | ownership | pace | listening | policy_adherence | product_knowledge",
      "observation": "what the agent did/said",
      "evidence": "short direct quote",
      "recommended_change": "what to do better next time",
      "impact": "low | medium | high"
    }
  ],
  "post_call_recommendations": [
    "specific next steps the agent should take after the call (e.g., send recap email with X, create ticket Y, schedule follow-up by DATE, update CRM with Z, proactive checks)"
  ],
  "follow_up_message_draft": "1 short paragraph the agent can send as a follow-up now",
  "sentiment_analysis": "2-4 sentences of critical-thinking analysis on the transcription, citing brief evidence/quotes where useful"
}`,
}

// SchemaExtended is the coaching-oriented schema variant: everything in
// the core schema plus win-back strategy, objections, per-speaker
// sentiment, commitment level, and resolution outcome.
var SchemaExtended = SchemaVersion{
	Name:           "extended-v1",
	DeprecatedKeys: []string{"per_turn", "compliance_flags", "escalation_risk", "escalation_reason"},
	Goals: []string{
		"Detect overall sentiment/emotion and confidence.",
		"Assess customer satisfaction and confidence.",
		"Provide a concise call summary.",
		"Identify customer intent and key issues.",
		"Extract concrete action items with owner and due date if present.",
		"THINK about which speaker is the agent; set 'agent_speaker_label' to the best guess and a confidence score.",
		"Provide 'agent_improvement_opportunities' that focus on what the agent could do better next time, with evidence quotes and impact.",
		"Provide 'what_worked' and 'what_didnt_work' with specific evidence; focus on tactics, questions, and phrasing that helped or hurt outcomes.",
		"Provide a 'win_back_strategy' including messaging pillars and a 'sample_response' the agent can say now to win the customer back.",
		"Identify 'objections' with severity and recommend improved responses.",
		"Outline 'next_best_actions_ranked' with priorities, owners, due dates if present, and rationale.",
		"Note any 'knowledge_gaps'.",
		"Determine 'outcome.resolution_status' and if follow-up is required.",
		"Provide 'post_call_recommendations' and a short 'follow_up_message_draft'.",
		"Provide a 'sentiment_analysis' with critical thinking and quotes.",
		"Keep lists concise (max 3-5 items) and avoid repetition.",
	},
	Template: `Return ONLY a JSON object with this exact structure and keys (no markdown, no extra text). If a field is not applicable, use an empty string for strings, [] for arrays, and null where allowed. Keep lists concise (3-5 items max) and prefer brief quotes.

{
  "emotion_overall": "very_negative | negative | neutral | positive | very_positive",
  "emotion_confidence": 0.0,
  "satisfaction": "very_unsatisfied | unsatisfied | neutral | satisfied | very_satisfied",
  "satisfaction_confidence": 0.0,

  "summary": "2-4 concise sentences summarizing the conversation",
  "customer_intent": "primary customer intent in one sentence",
  "issues": ["list of key issues raised by the customer"],

  "action_items": [
    {
      "owner": "agent | customer | other",
      "item": "what needs to be done",
      "due": "YYYY-MM-DD or null"
    }
  ],

  "agent_speaker_label": "Speaker 1 | Speaker 2 | Speaker 3 | unknown",
  "agent_identification_confidence": 0.0,

  "agent_improvement_opportunities": [
    {
      "category": "empathy | discovery | clarity | solution_quality | ownership | pace | listening | policy_adherence | product_knowledge",
      "observation": "what the agent did/said",
      "evidence": "short direct quote",
      "recommended_change": "what to do better next time",
      "impact": "low | medium | high"
    }
  ],

  "what_worked": [
    {
      "category": "rapport | empathy | discovery | value_proposition | objection_handling | clarity | pacing | personalization | next_steps",
      "observation": "what specifically helped",
      "evidence": "short direct quote",
      "impact": "low | medium | high"
    }
  ],

  "what_didnt_work": [
    {
      "category": "empathy | discovery | clarity | solution_quality | ownership | pace | listening | policy_adherence | product_knowledge | pricing | urgency",
      "observation": "what hindered progress",
      "evidence": "short direct quote",
      "recommended_fix": "what to change next time",
      "impact": "low | medium | high"
    }
  ],

  "win_back_strategy": {
    "root_cause": "root reason for dissatisfaction in one phrase",
    "messaging_pillars": ["3 short points that address the root cause"],
    "sample_response": "short paragraph the agent can say now to win the customer back",
    "do": ["tactics to use"],
    "avoid": ["pitfalls to avoid"]
  },

  "next_best_actions_ranked": [
    {
      "priority": 1,
      "action": "specific action",
      "owner": "agent | customer | other",
      "due": "YYYY-MM-DD or null",
      "rationale": "why this helps"
    }
  ],

  "objections": [
    {
      "type": "price | timing | competitor | feature_gap | trust | contract | other",
      "severity": "low | medium | high",
      "evidence": "short quote showing the objection",
      "agent_response_quality": "poor | adequate | strong",
      "recommended_response": "improved response for next time"
    }
  ],

  "speaker_sentiment": [
    {
      "speaker_label": "Speaker 1 | Speaker 2 | Speaker 3 | unknown",
      "role": "agent | customer | other | unknown",
      "sentiment": "very_negative | negative | neutral | positive | very_positive",
      "confidence": 0.0
    }
  ],

  "knowledge_gaps": ["areas where the agent lacked info"],

  "customer_commitment": {
    "level": "none | soft | strong",
    "statements": ["quotes indicating commitment level"]
  },

  "outcome": {
    "resolution_status": "resolved | partially_resolved | unresolved | n/a",
    "reason": "brief reason supporting status",
    "follow_up_required": true
  },

  "clarifying_questions_to_ask_next_time": ["high-leverage questions to ask next time"],
  "post_call_recommendations": [
    "specific next steps the agent should take after the call (e.g., send recap email with X, create ticket Y, schedule follow-up by DATE, update CRM with Z, proactive checks)"
  ],
  "follow_up_message_draft": "1 short paragraph the agent can send as a follow-up now",
  "sentiment_analysis": "2-4 sentences of critical-thinking analysis on the transcription, citing brief evidence/quotes where useful",

  "manager_coach_notes_top3": ["3 concise bullets a manager should coach on"],
  "agent_takeaways_top3": ["3 concise bullets the agent should remember next time"]
}`,
}

// Schemas lists the known schema versions by name.
var Schemas = map[string]SchemaVersion{
	SchemaCore.Name:     SchemaCore,
	SchemaExtended.Name: SchemaExtended,
}
