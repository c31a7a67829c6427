package main

// Sample is a benchmark input.
type Sample struct {
	Name string
	Text string
}

// Samples are everyday messages of increasing length, with the small slips
// people make when typing quickly.
var Samples = []Sample{
	{
		Name: "tiny",
		Text: "hey, can u send me the slides from yesterdays meeting? need them before 3",
	},
	{
		Name: "short",
		Text: `Hi Priya,

Thanks for the quick turnaround on the landing page copy. I read it twice and its really good, only thing is the second paragraph feel a bit long for mobile. Could we cut it to two sentences? Happy to jump on a call if easier.

Cheers,
Tom`,
	},
	{
		Name: "medium",
		Text: `Hello all,

Quick recap of where the customer feedback survey stands. We got 214 responses since launching on Monday which is way more than we expected. Most people are happy with the onboarding flow but a lot of them mention that the pricing page is confusing, specially the difference between the Team and Business plans.

A few people also asked for a dark mode, and around 20 responses mentions that notifications arrive late on Android. I already opened a ticket for the notification issue with the mobile team.

My suggestion is that we prioritise the pricing page next sprint since it directly affect conversions. I can put together a short proposal with two or three options by Wednesday. Let me know if anyone disagree or want to add something.

Thanks,
Tom`,
	},
	{
		Name: "long",
		Text: `Subject: Office move - what you need to know

Hi everyone,

As most of you already heard, we are moving to the new office on Harbour Street at the end of next month. I want to share the plan so nobody get surprised and we can keep the disruption as small as possible.

Timeline:
The movers come on Friday the 28th after 2pm. Everything that is not packed by then will stay in the old building over the weekend, so please pack your desk on Thursday. Boxes and labels are in the kitchen starting this Monday. Label every box with your name and your new desk number, which you can find in the seating plan I attached.

IT equipment:
Please do not pack monitors, docking stations or cables yourself. The IT team will handle all of it and will have everything set up by Monday morning. If you use any special hardware, like a drawing tablet or a second keyboard, send a message to the helpdesk before Wednesday so they know about it.

Access and parking:
Your current badge will not work in the new building. New badges are ready and you can pick them up at reception from Tuesday. There are only 40 parking spots, so we will run a sign up sheet; the rest of the team can use the public garage two streets away, and the company will cover the cost for the first three months.

First week:
On Monday we will have breakfast at 9 in the big meeting room on the third floor, and a short tour of the building after. Some meeting rooms will still be missing screens during the first week, so please book the ones marked as ready in the calendar.

If you have any question or concern, reply to this email or come find me. I know moving is always a bit of a pain, but the new space is much brighter and has way more room for the team to grow.

Thanks for your patience,
Tom`,
	},
}

// QualitySamples are short inputs for eyeballing each action's output.
var QualitySamples = []Sample{
	{
		Name: "apology",
		Text: "sorry for the late reply, i was sick all week and didnt check my emails",
	},
	{
		Name: "request",
		Text: "We need the budget numbers until Friday otherwise we can not finish the report in time for the board.",
	},
	{
		Name: "announcement",
		Text: "The team shipped the new search feature today! Results are faster and you can now filter by date.",
	},
	{
		Name: "complaint",
		Text: "The order arrive three days late and the box was damaged, this is the second time this happen.",
	},
	{
		Name: "emoji",
		Text: "Great work on the launch 🎉🚀 everyone stayed late and it really show 💪",
	},
}
